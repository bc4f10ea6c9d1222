package pretty

import "context"

// renderSimple implements Simple mode: a direct recursive walk that never
// resolves a [Choice] by measuring — it always takes the non-flat,
// unindented reading. No line buffer, no backtracking, no lookahead.
// Indentation from [Nested]/[Aligned] and boxes' row spacing are both
// ignored, matching spec.md's description of Simple mode as a debugging
// and minimum-viable fallback, not a faithful layout.
func renderSimple[A any](ctx context.Context, doc Document[A], r Renderer[A]) error {
	return simpleWalk(ctx, doc, r)
}

func simpleWalk[A any](ctx context.Context, doc Document[A], r Renderer[A]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch n := doc.node.(type) {
	case emptyNode[A]:
		return nil
	case hardLineNode[A]:
		return r.NewLine(ctx)
	case whiteSpaceNode[A]:
		if n.amount == 0 {
			return nil
		}
		return r.WhiteSpace(ctx, n.amount)
	case textNode[A]:
		return r.Text(ctx, n.s)
	case boxNode[A]:
		return simpleWalkBox(ctx, n.box, r)
	case appendNode[A]:
		if err := simpleWalk(ctx, n.left, r); err != nil {
			return err
		}
		return simpleWalk(ctx, n.right, r)
	case alternativeNode[A]:
		return simpleWalk(ctx, n.def, r)
	case choiceNode[A]:
		return simpleWalk(ctx, n.second, r)
	case flattenedNode[A]:
		return simpleWalk(ctx, n.inner, r)
	case nestedNode[A]:
		return simpleWalk(ctx, n.inner, r)
	case alignedNode[A]:
		return simpleWalk(ctx, n.inner, r)
	case annotatedNode[A]:
		if err := r.PushAnnotation(ctx, n.value); err != nil {
			return err
		}
		if err := simpleWalk(ctx, n.inner, r); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.PopAnnotation(ctx)
	default:
		panic(internalErrorf("simpleWalk: unknown node type %T", n))
	}
}

func simpleWalkBox[A any](ctx context.Context, b Box[A], r Renderer[A]) error {
	height := b.Height()
	for row := 0; row < height; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.RenderRow(ctx, r, row); err != nil {
			return err
		}
		if row < height-1 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.NewLine(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
