package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/pretty"
	"github.com/teleivo/pretty/render"
)

func TestPlainTextRendersAndDiscardsAnnotations(t *testing.T) {
	doc := pretty.Annotated("red", pretty.AppendAll(
		pretty.Text[string]("a"),
		pretty.Indented(2, pretty.AppendAll(
			pretty.Text[string]("b"),
			pretty.HardLine[string](),
			pretty.Text[string]("c"),
		)),
	))

	var sb strings.Builder
	err := pretty.Render(context.Background(), doc, render.NewPlainText[string](&sb), pretty.DefaultLayoutOptions())
	require.NoError(t, err)
	assert.Equals(t, sb.String(), "a  b\n   c")
}

func TestPlainTextWhiteSpaceBeyondCachedBuffer(t *testing.T) {
	opts := pretty.DefaultLayoutOptions()
	opts.StripTrailingWhitespace = false

	var sb strings.Builder
	err := pretty.Render(context.Background(), pretty.WhiteSpace[string](300), render.NewPlainText[string](&sb), opts)
	require.NoError(t, err)
	assert.Equals(t, sb.String(), strings.Repeat(" ", 300))
}
