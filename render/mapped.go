package render

import (
	"context"

	"github.com/teleivo/pretty"
)

// Mapped adapts a [pretty.Renderer][B] to [pretty.Renderer][A] by running
// every annotation value through f before forwarding the push. Unlike
// [pretty.MapAnnotations], which rewrites the whole [pretty.Document] tree
// (and can turn one annotation into many), Mapped only touches values
// crossing the renderer boundary, after the engine has already resolved
// every [pretty.Choice] — a renderer-side annotation transform is cheaper
// when a 1:1 mapping is all a caller needs.
type Mapped[A, B any] struct {
	inner pretty.Renderer[B]
	f     func(A) B
}

// NewMapped returns a Mapped renderer that forwards to inner, translating
// each annotation value through f.
func NewMapped[A, B any](inner pretty.Renderer[B], f func(A) B) *Mapped[A, B] {
	return &Mapped[A, B]{inner: inner, f: f}
}

func (m *Mapped[A, B]) Text(ctx context.Context, s string) error {
	return m.inner.Text(ctx, s)
}

func (m *Mapped[A, B]) WhiteSpace(ctx context.Context, n int) error {
	return m.inner.WhiteSpace(ctx, n)
}

func (m *Mapped[A, B]) NewLine(ctx context.Context) error {
	return m.inner.NewLine(ctx)
}

func (m *Mapped[A, B]) PushAnnotation(ctx context.Context, v A) error {
	return m.inner.PushAnnotation(ctx, m.f(v))
}

func (m *Mapped[A, B]) PopAnnotation(ctx context.Context) error {
	return m.inner.PopAnnotation(ctx)
}

var _ pretty.Renderer[any] = (*Mapped[any, any])(nil)
