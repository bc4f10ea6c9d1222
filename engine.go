package pretty

import "context"

// engine is the stack-driven, one-line-lookahead backtracking interpreter
// from spec.md §4.2 (Default mode), extended in place for Smart mode per
// §4.4 — the two share all state and dispatch logic except for how
// [alignedNode] and [hardLineNode] touch bufferUntilDeindent.
type engine[A any] struct {
	renderer  Renderer[A]
	opts      LayoutOptions
	pageWidth *PageWidth
	smart     bool

	flatten             bool
	nesting             int
	indentWritten       int
	lineTextLen         int
	lineBuf             []instruction[A]
	stack               []stackItem[A]
	canBacktrack        bool
	bufferUntilDeindent int // -1 means disarmed

	pool []*choicePointItem[A]
}

// Render drives r with the layout of doc chosen under opts. ctx is polled
// before each stack item is dispatched and before each call to r; a
// canceled ctx stops the engine promptly and Render returns ctx.Err(),
// possibly after r has already observed a prefix of the output.
func Render[A any](ctx context.Context, doc Document[A], r Renderer[A], opts LayoutOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.LayoutMode == Simple {
		return renderSimple(ctx, doc, r)
	}
	e := &engine[A]{
		renderer:            r,
		opts:                opts,
		pageWidth:           opts.PageWidth,
		smart:               opts.LayoutMode == Smart,
		bufferUntilDeindent: -1,
	}
	return e.run(ctx, doc)
}

func (e *engine[A]) run(ctx context.Context, doc Document[A]) error {
	e.push(docItem[A]{doc: doc})
	for len(e.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := e.pop()
		if err := e.dispatch(ctx, item); err != nil {
			return err
		}
	}
	return e.flush(ctx, true)
}

func (e *engine[A]) push(item stackItem[A]) {
	e.stack = append(e.stack, item)
}

func (e *engine[A]) pop() stackItem[A] {
	item := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return item
}

func (e *engine[A]) dispatch(ctx context.Context, item stackItem[A]) error {
	switch it := item.(type) {
	case docItem[A]:
		return e.dispatchNode(ctx, it.doc)
	case setNestingLevelItem[A]:
		if e.bufferUntilDeindent >= 0 && it.n < e.bufferUntilDeindent {
			e.bufferUntilDeindent = -1
		}
		e.nesting = it.n
		return nil
	case popAnnotationItem[A]:
		e.lineBuf = append(e.lineBuf, popAnnotationInstruction[A]())
		return nil
	case endFlattenItem[A]:
		e.flatten = false
		return nil
	case *choicePointItem[A]:
		return e.dispatchChoicePoint(it)
	default:
		panic(internalErrorf("dispatch: unknown stack item %T", item))
	}
}

func (e *engine[A]) dispatchNode(ctx context.Context, doc Document[A]) error {
	switch n := doc.node.(type) {
	case emptyNode[A]:
		return nil
	case hardLineNode[A]:
		return e.dispatchHardLine(ctx)
	case whiteSpaceNode[A]:
		e.lineBuf = append(e.lineBuf, whiteSpaceInstruction[A](n.amount))
		e.lineTextLen += n.amount
		e.checkOverflow()
		return nil
	case textNode[A]:
		e.lineBuf = append(e.lineBuf, textInstruction[A](n.s))
		e.lineTextLen += textWidth(n.s)
		e.checkOverflow()
		return nil
	case boxNode[A]:
		return e.dispatchBox(ctx, n.box)
	case appendNode[A]:
		e.push(docItem[A]{doc: n.right})
		e.push(docItem[A]{doc: n.left})
		return nil
	case alternativeNode[A]:
		if e.flatten {
			e.push(docItem[A]{doc: n.flattened})
		} else {
			e.push(docItem[A]{doc: n.def})
		}
		return nil
	case choiceNode[A]:
		e.dispatchChoice(n)
		return nil
	case flattenedNode[A]:
		if !e.flatten {
			e.flatten = true
			e.push(endFlattenItem[A]{})
		}
		e.push(docItem[A]{doc: n.inner})
		return nil
	case nestedNode[A]:
		e.push(setNestingLevelItem[A]{n: e.nesting})
		amount := n.amount
		if n.useDefault {
			amount = e.opts.DefaultNesting
		}
		e.nesting += amount
		e.push(docItem[A]{doc: n.inner})
		return nil
	case alignedNode[A]:
		e.dispatchAligned(n)
		return nil
	case annotatedNode[A]:
		e.lineBuf = append(e.lineBuf, pushAnnotationInstruction[A](n.value))
		e.push(popAnnotationItem[A]{})
		e.push(docItem[A]{doc: n.inner})
		return nil
	default:
		panic(internalErrorf("dispatchNode: unknown node type %T", n))
	}
}

func textWidth(s string) int {
	return len([]rune(s))
}

// willFit reports whether k more printable columns still fit on the
// currently buffered line, per the fit predicate in spec.md §4.2.1.
func (e *engine[A]) willFit(k int) bool {
	if e.pageWidth == nil {
		return true
	}
	if e.indentWritten+e.lineTextLen+k > e.pageWidth.Width {
		return false
	}
	if float64(e.lineTextLen+k) > e.pageWidth.ribbon() {
		return false
	}
	return true
}

func (e *engine[A]) checkOverflow() {
	if e.canBacktrack && !e.willFit(0) {
		e.backtrack()
	}
}

// dispatchHardLine: HardLine is mandatory and "defeats any enclosing
// flatten" (spec.md §3.1's node table). Inside a live Choice evaluation,
// defeating the flatten means abandoning the flattened attempt and
// backtracking to the Choice's fallback. Reached via [Flattened] with no
// enclosing Choice (e.g. Flattened(HardLine) rendered on its own), there is
// nothing to fall back to, so defeating the flatten instead means simply
// rendering the break as if flatten had never been set.
func (e *engine[A]) dispatchHardLine(ctx context.Context) error {
	if e.flatten && e.canBacktrack {
		e.backtrack()
		return nil
	}
	e.lineBuf = append(e.lineBuf, newLineInstruction[A]())
	if e.bufferUntilDeindent < 0 {
		if err := e.flush(ctx, true); err != nil {
			return err
		}
	}
	e.lineTextLen = 0
	if e.nesting > 0 {
		e.lineBuf = append(e.lineBuf, whiteSpaceInstruction[A](e.nesting))
	}
	e.indentWritten = e.nesting
	return nil
}

func (e *engine[A]) dispatchAligned(n alignedNode[A]) {
	old := e.nesting
	column := e.indentWritten + e.lineTextLen
	if e.smart && e.canBacktrack && e.bufferUntilDeindent < 0 && column > 0 {
		e.bufferUntilDeindent = column
	}
	e.push(setNestingLevelItem[A]{n: old})
	e.push(docItem[A]{doc: n.inner})
	e.push(setNestingLevelItem[A]{n: column})
}

// dispatchChoice implements spec.md §4.2.3's two Choice cases: the
// no-ChoicePoint fast path for Choice(Flattened(x), y) (i.e. [Grouped]),
// and the general case that records a backtrack point.
func (e *engine[A]) dispatchChoice(n choiceNode[A]) {
	if _, ok := n.first.node.(flattenedNode[A]); ok {
		if n.first.flattenable && e.willFit(n.first.width) {
			e.push(docItem[A]{doc: n.first})
		} else {
			e.push(docItem[A]{doc: n.second})
		}
		return
	}

	resumeAt := -1
	if len(e.stack) > 0 {
		resumeAt = e.locate(len(e.stack) - 1)
	}
	cp := e.newChoicePoint(n.second, resumeAt)
	e.push(cp)
	e.canBacktrack = true
	e.push(docItem[A]{doc: n.first})
}

// locate walks past any contiguous ChoicePoint already sitting at stack
// index i, following its resumeAt link, so a nested Choice's own resumeAt
// ultimately points at real (non-ChoicePoint) content — see spec.md §4.2.5.
func (e *engine[A]) locate(i int) int {
	for i >= 0 {
		cp, ok := e.stack[i].(*choicePointItem[A])
		if !ok {
			return i
		}
		i = cp.resumeAt
	}
	return i
}

// dispatchChoicePoint handles a ChoicePoint reached by ordinary (non-
// backtracking) popping: its first branch finished successfully. It pulls
// one more item up from resumeAt, clearing that slot and re-pushing itself
// underneath the pulled item, so it stays live on the stack (available for
// a later backtrack) without blocking progress through what's below it.
// The pulled item is also appended to cp.pulled, since its original stack
// slot is gone (overwritten with Empty) and backtrack has nowhere else to
// recover it from. When resumeAt runs out, the whole document has been
// processed and the ChoicePoint is finally discarded.
func (e *engine[A]) dispatchChoicePoint(cp *choicePointItem[A]) error {
	if cp.resumeAt < 0 {
		e.recycle(cp)
		return nil
	}
	idx := cp.resumeAt
	cont := e.stack[idx]
	e.stack[idx] = docItem[A]{doc: Empty[A]()}
	cp.pulled = append(cp.pulled, cont)
	cp.resumeAt--
	e.push(cp)
	e.push(cont)
	return nil
}

// backtrack pops the stack until it finds a live ChoicePoint, restores its
// snapshot, and retries with its fallback branch followed by every
// continuation item cp had already pulled up via resumeAt — those items'
// original stack slots were overwritten with Empty as they were pulled, so
// cp.pulled is the only remaining record of them. Without replaying them
// here, content after the Choice (e.g. the rest of a Reflow'd paragraph)
// would be silently dropped whenever the overflow triggering this backtrack
// was discovered while processing one of them rather than the first branch
// itself. Panics with an [InternalError] if no ChoicePoint is found —
// can_backtrack is supposed to make that unreachable.
func (e *engine[A]) backtrack() {
	for len(e.stack) > 0 {
		item := e.pop()
		cp, ok := item.(*choicePointItem[A])
		if !ok {
			continue
		}
		e.nesting = cp.nesting
		e.indentWritten = cp.indentWritten
		e.lineBuf = e.lineBuf[:cp.lineBufLen]
		e.lineTextLen = cp.lineTextLen
		e.flatten = cp.flatten
		e.canBacktrack = cp.priorCanBacktrack
		e.bufferUntilDeindent = cp.bufferUntilDeindent
		for i := len(cp.pulled) - 1; i >= 0; i-- {
			e.push(cp.pulled[i])
		}
		e.push(docItem[A]{doc: cp.fallback})
		e.recycle(cp)
		return
	}
	panic(internalErrorf("backtrack: no choice point on stack; can_backtrack was true with nothing to restore"))
}

func (e *engine[A]) newChoicePoint(fallback Document[A], resumeAt int) *choicePointItem[A] {
	var cp *choicePointItem[A]
	if n := len(e.pool); n > 0 {
		cp = e.pool[n-1]
		e.pool = e.pool[:n-1]
	} else {
		cp = &choicePointItem[A]{}
	}
	cp.fallback = fallback
	cp.nesting = e.nesting
	cp.indentWritten = e.indentWritten
	cp.lineBufLen = len(e.lineBuf)
	cp.lineTextLen = e.lineTextLen
	cp.flatten = e.flatten
	cp.priorCanBacktrack = e.canBacktrack
	cp.bufferUntilDeindent = e.bufferUntilDeindent
	cp.resumeAt = resumeAt
	return cp
}

// recycle scrubs cp's fallback document reference (so a discarded subtree
// becomes collectible), drops its pulled-continuation references, and
// returns cp to the free-list pool.
func (e *engine[A]) recycle(cp *choicePointItem[A]) {
	cp.fallback = Document[A]{}
	for i := range cp.pulled {
		cp.pulled[i] = nil
	}
	cp.pulled = cp.pulled[:0]
	e.pool = append(e.pool, cp)
}

func (e *engine[A]) dispatchBox(ctx context.Context, b Box[A]) error {
	height := b.Height()
	width := b.Width()
	// A multi-row Box can't be flattened onto one line any more than a
	// HardLine can — same "defeats any enclosing flatten" reasoning as
	// dispatchHardLine above applies here.
	if e.flatten && height > 1 && e.canBacktrack {
		e.backtrack()
		return nil
	}
	if e.canBacktrack && !e.willFit(width) {
		e.backtrack()
		return nil
	}

	saved := e.nesting
	e.nesting = e.indentWritten + e.lineTextLen
	if err := e.flush(ctx, false); err != nil {
		return err
	}

	for row := 0; row < height; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.RenderRow(ctx, e.renderer, row); err != nil {
			return err
		}
		if row < height-1 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.renderer.NewLine(ctx); err != nil {
				return err
			}
			if e.nesting > 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := e.renderer.WhiteSpace(ctx, e.nesting); err != nil {
					return err
				}
			}
		}
	}

	e.indentWritten = e.nesting
	e.lineTextLen = width
	e.nesting = saved
	return nil
}

// flush commits the current line buffer to the renderer and clears it.
// trim additionally requires opts.StripTrailingWhitespace — it is passed
// false for the flush a box triggers, since the reference behavior this
// package preserves (see spec.md §9, Open Questions) never trims around a
// box boundary regardless of the option.
func (e *engine[A]) flush(ctx context.Context, trim bool) error {
	e.commitChoices()

	trimEnabled := trim && e.opts.StripTrailingWhitespace
	buf := e.lineBuf
	for i := 0; i < len(buf); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		instr := buf[i]
		switch instr.kind {
		case instrText:
			if err := e.renderer.Text(ctx, instr.text); err != nil {
				return err
			}
		case instrWhiteSpace:
			if trimEnabled && !hasTextBeforeNewLine(buf[i+1:]) {
				continue
			}
			if err := e.renderer.WhiteSpace(ctx, instr.n); err != nil {
				return err
			}
		case instrNewLine:
			if err := e.renderer.NewLine(ctx); err != nil {
				return err
			}
		case instrPushAnnotation:
			if err := e.renderer.PushAnnotation(ctx, instr.ann); err != nil {
				return err
			}
		case instrPopAnnotation:
			if err := e.renderer.PopAnnotation(ctx); err != nil {
				return err
			}
		default:
			panic(internalErrorf("flush: unknown instruction kind %d", instr.kind))
		}
	}
	e.lineBuf = e.lineBuf[:0]
	return nil
}

// hasTextBeforeNewLine is the trailing-whitespace suppressor's lookahead
// (spec.md §4.8): does rest contain a Text instruction before its next
// NewLine (or its end)?
func hasTextBeforeNewLine[A any](rest []instruction[A]) bool {
	for _, instr := range rest {
		switch instr.kind {
		case instrNewLine:
			return false
		case instrText:
			return true
		}
	}
	return false
}

// commitChoices frees every ChoicePoint currently on the stack: the
// buffered line they produced is about to be emitted, so their fallback
// documents are no longer reachable from here, per spec.md §4.2.6.
func (e *engine[A]) commitChoices() {
	for i, item := range e.stack {
		cp, ok := item.(*choicePointItem[A])
		if !ok {
			continue
		}
		for j := cp.resumeAt + 1; j <= i; j++ {
			e.stack[j] = docItem[A]{doc: Empty[A]()}
		}
		e.recycle(cp)
	}
	e.canBacktrack = false
}
