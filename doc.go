// Package pretty implements a Wadler/Leijen-style pretty-printing engine.
//
// A [Document] is not a string: it is a value in an algebra of layouts,
// built from a handful of constructors ([Empty], [HardLine], [WhiteSpace],
// [Text], [Append], [Alternative], [Choice], [Flattened], [Nested],
// [Aligned], [Annotated]) plus the derived shorthands in this package
// ([Grouped], [LineBreak], [Reflow], ...). [Render] walks that value against
// a page-width budget and drives a [Renderer] with the chosen layout,
// picking at every [Choice] point the first, flatter branch unless it
// overflows the current line.
//
// Documents are immutable and safely shared; nothing under this package
// mutates a [Document] once built. The annotation type parameter A is
// opaque to the engine — it is only ever passed through to the renderer's
// PushAnnotation/PopAnnotation calls, e.g. for syntax highlighting.
package pretty

import (
	"github.com/teleivo/pretty/internal/assert"
)

// Document is an immutable tree describing how text should be laid out:
// which parts may share a line, where indentation changes, and which
// opaque annotation values (of type A) wrap which regions.
//
// The zero value is not a valid Document; build one with [Empty] or any
// other constructor in this package.
type Document[A any] struct {
	node node[A]

	// flattenable is false iff rendering the subtree flattened would still
	// reach a HardLine (or a Box taller than one row): an Alternative
	// counts only its flattened branch, while Flattened, Nested, Aligned
	// and Annotated inherit their inner document's flag. It is the
	// "unflattenable" marker from the algebra's flattened-width field.
	flattenable bool
	// width is the total printable width of this subtree assuming every
	// enclosed line break flattens. Only meaningful when flattenable.
	width int
}

// node is the sealed tag of the document algebra. Every constructor in
// this file returns a Document wrapping exactly one of the concrete types
// below.
type node[A any] interface {
	isNode()
}

type emptyNode[A any] struct{}

func (emptyNode[A]) isNode() {}

type hardLineNode[A any] struct{}

func (hardLineNode[A]) isNode() {}

type whiteSpaceNode[A any] struct{ amount int }

func (whiteSpaceNode[A]) isNode() {}

type textNode[A any] struct{ s string }

func (textNode[A]) isNode() {}

type boxNode[A any] struct{ box Box[A] }

func (boxNode[A]) isNode() {}

type appendNode[A any] struct{ left, right Document[A] }

func (appendNode[A]) isNode() {}

// alternativeNode is "pick one based on the enclosing flatten flag" — the
// default branch (rendered when not flattening) and the flattened branch
// (rendered when flattening) have different widths.
type alternativeNode[A any] struct{ def, flattened Document[A] }

func (alternativeNode[A]) isNode() {}

// choiceNode is "try first; on overflow use second" — both branches mean
// the same thing, just laid out differently.
type choiceNode[A any] struct{ first, second Document[A] }

func (choiceNode[A]) isNode() {}

type flattenedNode[A any] struct{ inner Document[A] }

func (flattenedNode[A]) isNode() {}

// nestedNode increases the indent level by amount while rendering inner.
// useDefault selects "use the engine's default indent" (spec's amount =
// None) rather than amount itself.
type nestedNode[A any] struct {
	amount     int
	useDefault bool
	inner      Document[A]
}

func (nestedNode[A]) isNode() {}

type alignedNode[A any] struct{ inner Document[A] }

func (alignedNode[A]) isNode() {}

type annotatedNode[A any] struct {
	value A
	inner Document[A]
}

func (annotatedNode[A]) isNode() {}

func wrap[A any](n node[A], flattenable bool, width int) Document[A] {
	return Document[A]{node: n, flattenable: flattenable, width: width}
}

// Empty is the document with no text and no effect.
func Empty[A any]() Document[A] {
	return wrap[A](emptyNode[A]{}, true, 0)
}

// HardLine is a mandatory line break. It defeats any enclosing [Flattened]:
// if the engine is flattening when it reaches a HardLine and a [Choice] is
// still open to fall back on, it backtracks; with no open Choice, the
// HardLine breaks the line as usual.
func HardLine[A any]() Document[A] {
	return wrap[A](hardLineNode[A]{}, false, 0)
}

// WhiteSpace is n literal horizontal spaces. n must be non-negative.
func WhiteSpace[A any](n int) Document[A] {
	assert.That(n >= 0, "WhiteSpace: amount must be non-negative, got %d", n)
	if n == 0 {
		return Empty[A]()
	}
	return wrap[A](whiteSpaceNode[A]{amount: n}, true, n)
}

// Text is a literal run of non-newline text. It panics if s contains '\n' —
// use [FromString] or [UnsafeFromString] for multi-line input.
func Text[A any](s string) Document[A] {
	assert.That(!containsNewline(s), "Text: content must not contain a newline, got %q", s)
	if s == "" {
		return Empty[A]()
	}
	return wrap[A](textNode[A]{s: s}, true, len([]rune(s)))
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}

// BoxOf embeds a 2-D block whose width and height the engine consults when
// deciding whether a choice fits; the block itself is rendered by
// delegating one row at a time to the renderer. Box composition (tabular
// layout) is a client concern, not implemented by this package.
func BoxOf[A any](b Box[A]) Document[A] {
	if b.Height() == 0 || b.Width() == 0 {
		return Empty[A]()
	}
	flattenable := b.Height() <= 1
	return wrap[A](boxNode[A]{box: b}, flattenable, b.Width())
}

// Append composes a then b in sequence. It is the identity-and-associative
// monoid operation of the algebra (see spec's algebraic properties):
// Append(Empty, a) and Append(a, Empty) both render like a.
func Append[A any](a, b Document[A]) Document[A] {
	if _, ok := a.node.(emptyNode[A]); ok {
		return b
	}
	if _, ok := b.node.(emptyNode[A]); ok {
		return a
	}
	flattenable := a.flattenable && b.flattenable
	width := 0
	if flattenable {
		width = a.width + b.width
	}
	return wrap[A](appendNode[A]{left: a, right: b}, flattenable, width)
}

// AppendAll folds Append over ds left to right, dropping Empty operands.
func AppendAll[A any](ds ...Document[A]) Document[A] {
	result := Empty[A]()
	for _, d := range ds {
		result = Append(result, d)
	}
	return result
}

// Append is sugar for Append(d, other).
func (d Document[A]) Append(other Document[A]) Document[A] {
	return Append(d, other)
}

// Alternative renders def unless the engine is currently flattening, in
// which case it renders flattened. The two branches may have different
// widths — this is the primitive [LineOr] and friends build on.
func Alternative[A any](def, flattened Document[A]) Document[A] {
	return wrap[A](alternativeNode[A]{def: def, flattened: flattened}, flattened.flattenable, flattened.width)
}

// Choice renders first if it fits on the current line, else second. Unlike
// Alternative, both branches describe the same content at different
// widths, so Choice inherits first's flattened width (first is, by
// convention, the flatter of the two — see [Grouped]).
func Choice[A any](first, second Document[A]) Document[A] {
	return wrap[A](choiceNode[A]{first: first, second: second}, first.flattenable, first.width)
}

// Flattened temporarily forces the flatten flag on while rendering inner.
// A HardLine reached while flattening forces the engine to backtrack when a
// [Choice] is still open to fall back on (see [HardLine]).
func Flattened[A any](inner Document[A]) Document[A] {
	return wrap[A](flattenedNode[A]{inner: inner}, inner.flattenable, inner.width)
}

// Nested increases the indent level by the engine's default indent
// ([LayoutOptions.DefaultNesting]) while rendering inner.
func Nested[A any](inner Document[A]) Document[A] {
	return wrap[A](nestedNode[A]{useDefault: true, inner: inner}, inner.flattenable, inner.width)
}

// NestedBy increases the indent level by amount columns while rendering
// inner. amount must be non-negative.
func NestedBy[A any](amount int, inner Document[A]) Document[A] {
	assert.That(amount >= 0, "NestedBy: amount must be non-negative, got %d", amount)
	return wrap[A](nestedNode[A]{amount: amount, inner: inner}, inner.flattenable, inner.width)
}

// Aligned sets the indent level to the current column while rendering
// inner. Aligned is idempotent: Aligned(Aligned(d)) renders like Aligned(d).
func Aligned[A any](inner Document[A]) Document[A] {
	return wrap[A](alignedNode[A]{inner: inner}, inner.flattenable, inner.width)
}

// Annotated wraps inner in push/pop events carrying value. Push/pop calls
// are always balanced on a successful render.
func Annotated[A any](value A, inner Document[A]) Document[A] {
	return wrap[A](annotatedNode[A]{value: value, inner: inner}, inner.flattenable, inner.width)
}
