package pretty

// instrKind tags an instruction buffered for the current line.
type instrKind int

const (
	instrText instrKind = iota
	instrWhiteSpace
	instrNewLine
	instrPushAnnotation
	instrPopAnnotation
)

// instruction is one element of the line buffer: Text(slice) |
// WhiteSpace(n) | NewLine | PushAnnotation(A) | PopAnnotation, from
// spec.md §3.2.
type instruction[A any] struct {
	kind instrKind
	text string
	n    int
	ann  A
}

func textInstruction[A any](s string) instruction[A] {
	return instruction[A]{kind: instrText, text: s}
}

func whiteSpaceInstruction[A any](n int) instruction[A] {
	return instruction[A]{kind: instrWhiteSpace, n: n}
}

func newLineInstruction[A any]() instruction[A] {
	return instruction[A]{kind: instrNewLine}
}

func pushAnnotationInstruction[A any](v A) instruction[A] {
	return instruction[A]{kind: instrPushAnnotation, ann: v}
}

func popAnnotationInstruction[A any]() instruction[A] {
	return instruction[A]{kind: instrPopAnnotation}
}

// stackItem is the sealed tag of the engine's work stack: either a document
// node still to be processed, or one of the three control markers
// (SetNestingLevel, PopAnnotation, EndFlatten), or a ChoicePoint backtrack
// record. Kept as a single sum (rather than two parallel stacks) so a
// ChoicePoint's resume_at can index uniformly into it — see spec.md §9.
type stackItem[A any] interface {
	isStackItem()
}

// docItem wraps a Document subtree still to be dispatched.
type docItem[A any] struct{ doc Document[A] }

func (docItem[A]) isStackItem() {}

// setNestingLevelItem restores the engine's nesting level when popped — the
// frame-pop counterpart to [Nested]/[Aligned] pushing a new level.
type setNestingLevelItem[A any] struct{ n int }

func (setNestingLevelItem[A]) isStackItem() {}

// popAnnotationItem enqueues a PopAnnotation instruction when popped — the
// counterpart to [Annotated] appending its PushAnnotation instruction
// immediately.
type popAnnotationItem[A any] struct{}

func (popAnnotationItem[A]) isStackItem() {}

// endFlattenItem clears the flatten flag when popped — the counterpart to
// [Flattened] setting it.
type endFlattenItem[A any] struct{}

func (endFlattenItem[A]) isStackItem() {}

// choicePointItem is a backtrack record: if processing first overflows the
// current line, the engine restores this snapshot and retries with
// fallback. resumeAt indexes the stack slot holding whatever should run
// once this Choice (and anything nested inside it) is fully resolved; see
// the locate/resume machinery in engine.go and spec.md §4.2.5.
//
// pulled records, in the order dispatchChoicePoint lifted them off the
// stack, every continuation item resume_at has handed back so far. Each
// lift overwrites its original slot with Empty so normal forward progress
// never revisits it — which means that slot can no longer supply the item
// on a later backtrack. pulled is what lets backtrack re-run the exact
// same continuation after fallback instead of losing it.
type choicePointItem[A any] struct {
	fallback Document[A]

	nesting             int
	indentWritten       int
	lineBufLen          int
	lineTextLen         int
	flatten             bool
	priorCanBacktrack   bool
	bufferUntilDeindent int

	resumeAt int
	pulled   []stackItem[A]
}

func (*choicePointItem[A]) isStackItem() {}
