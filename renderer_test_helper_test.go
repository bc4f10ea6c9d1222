package pretty_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teleivo/pretty"
)

// traceRenderer records every call it receives as plain text plus a
// separate log of annotation push/pop events, so a test can assert on
// layout and on push/pop balance independently. It can also be told to
// fail or hang after a fixed number of calls, for error-propagation and
// cancellation tests.
type traceRenderer struct {
	out   strings.Builder
	trace []string

	calls     int
	failAfter int
	failWith  error
}

func newTraceRenderer() *traceRenderer {
	return &traceRenderer{failAfter: -1}
}

func (r *traceRenderer) tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.calls++
	if r.failAfter >= 0 && r.calls > r.failAfter {
		if r.failWith != nil {
			return r.failWith
		}
		return errors.New("traceRenderer: injected failure")
	}
	return nil
}

func (r *traceRenderer) Text(ctx context.Context, s string) error {
	if err := r.tick(ctx); err != nil {
		return err
	}
	r.out.WriteString(s)
	r.trace = append(r.trace, fmt.Sprintf("text(%q)", s))
	return nil
}

func (r *traceRenderer) WhiteSpace(ctx context.Context, n int) error {
	if err := r.tick(ctx); err != nil {
		return err
	}
	if n <= 0 {
		panic(fmt.Sprintf("traceRenderer.WhiteSpace called with n=%d, want > 0", n))
	}
	r.out.WriteString(strings.Repeat(" ", n))
	r.trace = append(r.trace, fmt.Sprintf("space(%d)", n))
	return nil
}

func (r *traceRenderer) NewLine(ctx context.Context) error {
	if err := r.tick(ctx); err != nil {
		return err
	}
	r.out.WriteByte('\n')
	r.trace = append(r.trace, "newline")
	return nil
}

func (r *traceRenderer) PushAnnotation(ctx context.Context, v string) error {
	if err := r.tick(ctx); err != nil {
		return err
	}
	r.trace = append(r.trace, "push("+v+")")
	return nil
}

func (r *traceRenderer) PopAnnotation(ctx context.Context) error {
	if err := r.tick(ctx); err != nil {
		return err
	}
	r.trace = append(r.trace, "pop")
	return nil
}

var _ pretty.Renderer[string] = (*traceRenderer)(nil)

// fixedBox is a test [pretty.Box] of static content, used to exercise the
// engine's box dispatch without pulling in a real table/grid renderer.
type fixedBox struct {
	rows []string
}

func (b fixedBox) Width() int {
	max := 0
	for _, row := range b.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func (b fixedBox) Height() int { return len(b.rows) }

func (b fixedBox) RenderRow(ctx context.Context, r pretty.Renderer[string], row int) error {
	return r.Text(ctx, b.rows[row])
}

var _ pretty.Box[string] = fixedBox{}
