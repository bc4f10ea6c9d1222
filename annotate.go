package pretty

import "context"

// MapAnnotations rebuilds doc, replacing each Annotated(v, inner) with zero
// or more Annotated(v', inner) wrapping the (recursively mapped) inner
// document, where v' ranges over f(v) in order. An annotation replaced by
// zero values is simply dropped; one replaced by several is nested, with
// the first value of f(v) innermost and the last outermost.
//
// Because a single annotation can map to several, and both branches of an
// [Alternative]/[Choice] are rebuilt independently, f may be called more
// than once for what was logically a single annotation in the source tree.
// Mapping at the renderer with [render.Mapped] avoids that cost when all
// you need is to transform annotation values on the way out, rather than
// changing their multiplicity.
func MapAnnotations[A, B any](doc Document[A], f func(A) []B) Document[B] {
	switch n := doc.node.(type) {
	case emptyNode[A]:
		return Empty[B]()
	case hardLineNode[A]:
		return HardLine[B]()
	case whiteSpaceNode[A]:
		return WhiteSpace[B](n.amount)
	case textNode[A]:
		return UnsafeFromString[B](n.s)
	case boxNode[A]:
		return BoxOf[B](mappedBox[A, B]{inner: n.box, f: f})
	case appendNode[A]:
		return Append(MapAnnotations(n.left, f), MapAnnotations(n.right, f))
	case alternativeNode[A]:
		return Alternative(MapAnnotations(n.def, f), MapAnnotations(n.flattened, f))
	case choiceNode[A]:
		return Choice(MapAnnotations(n.first, f), MapAnnotations(n.second, f))
	case flattenedNode[A]:
		return Flattened(MapAnnotations(n.inner, f))
	case nestedNode[A]:
		mapped := MapAnnotations(n.inner, f)
		if n.useDefault {
			return Nested(mapped)
		}
		return NestedBy(n.amount, mapped)
	case alignedNode[A]:
		return Aligned(MapAnnotations(n.inner, f))
	case annotatedNode[A]:
		result := MapAnnotations(n.inner, f)
		for _, v := range f(n.value) {
			result = Annotated(v, result)
		}
		return result
	default:
		panic(internalErrorf("MapAnnotations: unknown node type %T", n))
	}
}

// mappedBox adapts a Box[A] to Box[B] by transforming the annotation values
// its rows push, without rebuilding the box's own internal structure (which
// is a client concern — the engine and MapAnnotations only ever see a box
// through its Width/Height/RenderRow contract).
type mappedBox[A, B any] struct {
	inner Box[A]
	f     func(A) []B
}

func (m mappedBox[A, B]) Width() int  { return m.inner.Width() }
func (m mappedBox[A, B]) Height() int { return m.inner.Height() }

func (m mappedBox[A, B]) RenderRow(ctx context.Context, r Renderer[B], row int) error {
	return m.inner.RenderRow(ctx, &mapRenderer[A, B]{inner: r, f: m.f}, row)
}

// mapRenderer is the renderer-side counterpart used only while delegating a
// box row: it forwards everything except PushAnnotation, which it expands
// through f the same way MapAnnotations expands an Annotated node.
type mapRenderer[A, B any] struct {
	inner   Renderer[B]
	f       func(A) []B
	pending []int
}

func (m *mapRenderer[A, B]) Text(ctx context.Context, s string) error {
	return m.inner.Text(ctx, s)
}

func (m *mapRenderer[A, B]) WhiteSpace(ctx context.Context, n int) error {
	return m.inner.WhiteSpace(ctx, n)
}

func (m *mapRenderer[A, B]) NewLine(ctx context.Context) error {
	return m.inner.NewLine(ctx)
}

func (m *mapRenderer[A, B]) PushAnnotation(ctx context.Context, v A) error {
	vs := m.f(v)
	pushed := 0
	for _, bv := range vs {
		if err := m.inner.PushAnnotation(ctx, bv); err != nil {
			return err
		}
		pushed++
	}
	m.pending = append(m.pending, pushed)
	return nil
}

func (m *mapRenderer[A, B]) PopAnnotation(ctx context.Context) error {
	n := m.pending[len(m.pending)-1]
	m.pending = m.pending[:len(m.pending)-1]
	for i := 0; i < n; i++ {
		if err := m.inner.PopAnnotation(ctx); err != nil {
			return err
		}
	}
	return nil
}
