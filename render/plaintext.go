// Package render collects ready-made [pretty.Renderer] implementations:
// a plain-text adapter over an [io.Writer], and an annotation-mapping
// adapter for composing renderers with different annotation types.
package render

import (
	"context"
	"io"
	"strings"

	"github.com/teleivo/pretty"
)

// spaces is a cached buffer [PlainText.WhiteSpace] slices from, avoiding an
// allocation for the common case of writing a short run of indentation.
var spaces = strings.Repeat(" ", 128)

// PlainText renders a [pretty.Document] as plain text to w, discarding
// annotations. It implements [pretty.Renderer].
type PlainText[A any] struct {
	w io.Writer
}

// NewPlainText returns a [PlainText] writing to w.
func NewPlainText[A any](w io.Writer) *PlainText[A] {
	return &PlainText[A]{w: w}
}

func (p *PlainText[A]) Text(ctx context.Context, s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

func (p *PlainText[A]) WhiteSpace(ctx context.Context, n int) error {
	for n > 0 {
		k := n
		if k > len(spaces) {
			k = len(spaces)
		}
		if _, err := io.WriteString(p.w, spaces[:k]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

func (p *PlainText[A]) NewLine(ctx context.Context) error {
	_, err := io.WriteString(p.w, "\n")
	return err
}

func (p *PlainText[A]) PushAnnotation(ctx context.Context, v A) error { return nil }

func (p *PlainText[A]) PopAnnotation(ctx context.Context) error { return nil }

var _ pretty.Renderer[any] = (*PlainText[any])(nil)
