package pretty

import "context"

// Renderer is the sink [Render] drives: a stream of text, whitespace,
// newline, and annotation push/pop events. Implementations may suspend
// arbitrarily (e.g. writing to a network connection); the engine awaits
// each call, checking ctx for cancellation before issuing it.
//
// PushAnnotation/PopAnnotation calls are balanced by construction — every
// [Annotated] node pushes exactly once and pops exactly once around its
// inner document. A Renderer may keep its own stack of annotation values if
// it needs one; the engine does not expose a way to peek at it.
type Renderer[A any] interface {
	// Text emits a contiguous run of non-newline characters.
	Text(ctx context.Context, s string) error
	// WhiteSpace emits n literal spaces. The engine only ever calls this
	// with n > 0.
	WhiteSpace(ctx context.Context, n int) error
	// NewLine emits a line terminator.
	NewLine(ctx context.Context) error
	// PushAnnotation notifies the renderer that it is now inside the
	// region annotated with v.
	PushAnnotation(ctx context.Context, v A) error
	// PopAnnotation notifies the renderer that the most recently pushed,
	// not-yet-popped annotation's region has ended.
	PopAnnotation(ctx context.Context) error
}

// Box is an embedded 2-D block — a client-defined layout (e.g. a table)
// that this package treats as an opaque leaf: the engine only reads Width
// and Height to decide whether a [Choice] containing the box fits, and
// delegates the actual rendering of each row back to the box itself.
// Composing boxes into larger 2-D layouts is out of scope for this
// package; see spec.md's Non-goals.
type Box[A any] interface {
	// Width is the box's column count, used for the engine's fits-check.
	Width() int
	// Height is the box's row count. A box with Height() <= 1 may be
	// flattened like any other document; one with Height() > 1 cannot.
	Height() int
	// RenderRow renders row (0-indexed, 0 <= row < Height()) directly to
	// r. The engine calls this once per row, in order, writing a newline
	// and the current indent between rows itself.
	RenderRow(ctx context.Context, r Renderer[A], row int) error
}
