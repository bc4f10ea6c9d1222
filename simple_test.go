package pretty_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/pretty"
)

func TestRenderSimpleIgnoresWidthAndIndentation(t *testing.T) {
	doc := pretty.Indented(4, pretty.Grouped(pretty.AppendAll(
		pretty.Text[string]("aaaa"),
		pretty.LineBreak[string](),
		pretty.Text[string]("bbbb"),
	)))

	opts := pretty.DefaultLayoutOptions()
	opts.LayoutMode = pretty.Simple
	opts.PageWidth = &pretty.PageWidth{Width: 2, RibbonRatio: 1.0}

	got, err := pretty.ToString(doc, opts)
	require.NoError(t, err)
	assert.Equals(t, got, "    aaaa\nbbbb")
}

func TestRenderSimpleHardLineAndBox(t *testing.T) {
	doc := pretty.AppendAll(
		pretty.Text[string]("a"),
		pretty.HardLine[string](),
		pretty.BoxOf[string](fixedBox{rows: []string{"1", "2"}}),
	)

	opts := pretty.DefaultLayoutOptions()
	opts.LayoutMode = pretty.Simple

	got, err := pretty.ToString(doc, opts)
	require.NoError(t, err)
	assert.Equals(t, got, "a\n1\n2")
}
