package pretty

import (
	"context"
	"testing"

	"github.com/teleivo/assertive/assert"
)

// discardRenderer satisfies Renderer[string] without recording anything;
// these tests only care about the engine's own bookkeeping.
type discardRenderer struct{}

func (discardRenderer) Text(ctx context.Context, s string) error           { return nil }
func (discardRenderer) WhiteSpace(ctx context.Context, n int) error        { return nil }
func (discardRenderer) NewLine(ctx context.Context) error                  { return nil }
func (discardRenderer) PushAnnotation(ctx context.Context, v string) error { return nil }
func (discardRenderer) PopAnnotation(ctx context.Context) error            { return nil }

func TestChoicePointPoolIsReused(t *testing.T) {
	e := &engine[string]{
		renderer:            discardRenderer{},
		opts:                DefaultLayoutOptions(),
		pageWidth:           &PageWidth{Width: 80, RibbonRatio: 1},
		bufferUntilDeindent: -1,
	}

	cp1 := e.newChoicePoint(Text[string]("fallback-1"), -1)
	assert.Equals(t, len(e.pool), 0)
	e.recycle(cp1)
	assert.Equals(t, len(e.pool), 1)

	cp2 := e.newChoicePoint(Text[string]("fallback-2"), 3)
	if cp2 != cp1 {
		t.Errorf("newChoicePoint: want pooled *choicePointItem reused, got a fresh allocation")
	}
	assert.Equals(t, len(e.pool), 0)
	assert.Equals(t, cp2.resumeAt, 3)
}

func TestLocateSkipsChainedChoicePoints(t *testing.T) {
	e := &engine[string]{
		renderer:            discardRenderer{},
		opts:                DefaultLayoutOptions(),
		bufferUntilDeindent: -1,
	}

	// stack[0] is real content; stack[1] is a ChoicePoint whose own
	// resumeAt points back at it, so locate from stack[1] must resolve to 0
	// rather than returning 1 (the ChoicePoint's own index).
	e.stack = []stackItem[string]{
		docItem[string]{doc: Text[string]("x")},
		e.newChoicePoint(Empty[string](), 0),
	}

	assert.Equals(t, e.locate(1), 0)
}

func TestCommitChoicesClearsResumeRangeAndDisarms(t *testing.T) {
	e := &engine[string]{
		renderer:            discardRenderer{},
		opts:                DefaultLayoutOptions(),
		bufferUntilDeindent: -1,
	}

	e.stack = []stackItem[string]{
		docItem[string]{doc: Text[string]("a")},
		docItem[string]{doc: Text[string]("b")},
		e.newChoicePoint(Empty[string](), 0),
	}
	e.canBacktrack = true

	e.commitChoices()

	assert.Falsef(t, e.canBacktrack, "canBacktrack should be disarmed after commitChoices")

	// resumeAt was 0, so only indices resumeAt+1..i (1 and 2, the ChoicePoint
	// itself included) are cleared; stack[0] is still reachable from there
	// and is left alone.
	head, ok := e.stack[0].(docItem[string])
	if !ok {
		t.Fatalf("stack[0]: want docItem, got %T", e.stack[0])
	}
	if _, ok := head.doc.node.(textNode[string]); !ok {
		t.Errorf("stack[0]: want untouched Text node, got %#v", head.doc)
	}

	for i := 1; i < 3; i++ {
		item, ok := e.stack[i].(docItem[string])
		if !ok {
			t.Fatalf("stack[%d]: want docItem, got %T", i, e.stack[i])
		}
		if _, ok := item.doc.node.(emptyNode[string]); !ok {
			t.Errorf("stack[%d]: want Empty after commit, got %#v", i, item.doc)
		}
	}
	assert.Equals(t, len(e.pool), 1)
}

// TestBacktrackReplaysPulledContinuation exercises dispatchChoicePoint's
// pull-then-null step followed by a backtrack, directly at the engine level
// rather than through Render, to confirm the pulled item ends up back on
// the stack (after the fallback) instead of staying lost at its nulled
// slot. This is the scenario behind ReflowWrapsAtPageWidth in
// engine_test.go: a Choice's continuation must survive a backtrack
// triggered while processing that continuation, not just while processing
// the Choice's own first branch.
func TestBacktrackReplaysPulledContinuation(t *testing.T) {
	e := &engine[string]{
		renderer:            discardRenderer{},
		opts:                DefaultLayoutOptions(),
		bufferUntilDeindent: -1,
	}

	cont := docItem[string]{doc: Text[string]("bb")}
	e.stack = []stackItem[string]{cont}
	cp := e.newChoicePoint(Text[string]("fallback"), 0)
	e.canBacktrack = true
	e.push(cp)

	item := e.pop()
	if err := e.dispatchChoicePoint(item.(*choicePointItem[string])); err != nil {
		t.Fatalf("dispatchChoicePoint: %v", err)
	}

	// The pull overwrote stack[0] (cont's original slot) with Empty and
	// pushed cp then cont back on top.
	empty, ok := e.stack[0].(docItem[string])
	if !ok {
		t.Fatalf("stack[0]: want docItem, got %T", e.stack[0])
	}
	if _, ok := empty.doc.node.(emptyNode[string]); !ok {
		t.Fatalf("stack[0]: want Empty after pull, got %#v", empty.doc)
	}
	if got := e.pop(); got != cont {
		t.Fatalf("top of stack after pull: want the pulled continuation, got %#v", got)
	}

	e.backtrack()

	// Stack must now read [Empty, cont, fallback] bottom-to-top: fallback
	// runs first, then the continuation the pull had nulled out.
	if len(e.stack) != 3 {
		t.Fatalf("stack length after backtrack: want 3, got %d: %#v", len(e.stack), e.stack)
	}
	top := e.pop().(docItem[string])
	text, ok := top.doc.node.(textNode[string])
	if !ok || text.s != "fallback" {
		t.Fatalf("stack top after backtrack: want fallback, got %#v", top.doc)
	}
	restored := e.pop().(docItem[string])
	if restored != cont {
		t.Fatalf("stack below fallback after backtrack: want the pulled continuation restored, got %#v", restored)
	}
}
