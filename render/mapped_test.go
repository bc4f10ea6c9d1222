package render_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/pretty"
	"github.com/teleivo/pretty/render"
)

// recordingAnnotations captures the sequence of int annotations PushAnnotation
// receives, wrapping a [render.PlainText] for the text itself.
type recordingAnnotations struct {
	*render.PlainText[int]
	pushed []int
}

func (r *recordingAnnotations) PushAnnotation(ctx context.Context, v int) error {
	r.pushed = append(r.pushed, v)
	return r.PlainText.PushAnnotation(ctx, v)
}

func TestMappedTranslatesAnnotationValues(t *testing.T) {
	doc := pretty.Annotated("red", pretty.Append(
		pretty.Text[string]("x"),
		pretty.Annotated("blue", pretty.Text[string]("y")),
	))

	colorCode := map[string]int{"red": 1, "blue": 2}

	var sb strings.Builder
	inner := &recordingAnnotations{PlainText: render.NewPlainText[int](&sb)}
	mapped := render.NewMapped[string, int](inner, func(c string) int {
		code, ok := colorCode[c]
		if !ok {
			panic(fmt.Sprintf("unknown color %q", c))
		}
		return code
	})

	err := pretty.Render(context.Background(), doc, mapped, pretty.DefaultLayoutOptions())
	require.NoError(t, err)
	assert.Equals(t, sb.String(), "xy")
	assert.EqualValues(t, inner.pushed, []int{1, 2})
}
