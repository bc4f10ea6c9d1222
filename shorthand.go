package pretty

import "strings"

// LineOr renders as a [HardLine] by default, or as the literal text s when
// flattened. LineOr(" ") is [LineBreak]; LineOr("") is [ZeroWidthLineBreak].
func LineOr[A any](s string) Document[A] {
	return Alternative(HardLine[A](), Text[A](s))
}

// LineBreak is a line break that collapses to a single space when flattened.
func LineBreak[A any]() Document[A] {
	return LineOr[A](" ")
}

// ZeroWidthLineBreak is a line break that collapses to nothing when flattened.
func ZeroWidthLineBreak[A any]() Document[A] {
	return LineOr[A]("")
}

// LineBreakHint tries a single space first; if that doesn't fit on the
// current line, it breaks. Unlike LineBreak, this is a [Choice], not an
// [Alternative]: it is resolved by the one-line lookahead, not by an
// enclosing [Flattened].
func LineBreakHint[A any]() Document[A] {
	return Choice(Text[A](" "), HardLine[A]())
}

// ZeroWidthLineBreakHint is [LineBreakHint] with an empty flat branch.
func ZeroWidthLineBreakHint[A any]() Document[A] {
	return Choice(Text[A](""), HardLine[A]())
}

// Grouped tries to render d flat; if it doesn't fit, it falls back to d's
// own layout. Grouped is idempotent: Grouped(Grouped(d)) renders like
// Grouped(d).
func Grouped[A any](d Document[A]) Document[A] {
	return Choice(Flattened(d), d)
}

// Indented prepends n literal spaces and aligns d to the resulting column.
func Indented[A any](n int, d Document[A]) Document[A] {
	return Append(WhiteSpace[A](n), Aligned(d))
}

// Hanging aligns d to the current column, then increases the indent level
// by n for any line breaks inside it.
func Hanging[A any](n int, d Document[A]) Document[A] {
	return Aligned(NestedBy(n, d))
}

// FromString splits s on '\n' and interleaves [LineBreak], so embedded line
// breaks are flattenable. For '\n'-free s the result is a single text run,
// so [ToString] of it equals s; when nothing flattens it, each inserted
// LineBreak renders its default branch, a HardLine.
func FromString[A any](s string) Document[A] {
	lines := strings.Split(s, "\n")
	result := UnsafeFromString[A](lines[0])
	for _, line := range lines[1:] {
		result = Append(result, Append(LineBreak[A](), UnsafeFromString[A](line)))
	}
	return result
}

// UnsafeFromString is [Text] without the newline-free precondition; the
// caller must guarantee s contains no '\n'. Prefer [FromString] unless this
// is a hot path where that guarantee is already established.
func UnsafeFromString[A any](s string) Document[A] {
	if s == "" {
		return Empty[A]()
	}
	return wrap[A](textNode[A]{s: s}, true, len([]rune(s)))
}

// Reflow splits s on whitespace and interleaves [LineBreakHint], so the
// result wraps to the page width like a word processor's paragraph fill,
// rather than preserving s's original line breaks.
func Reflow[A any](s string) Document[A] {
	words := strings.Fields(s)
	if len(words) == 0 {
		return Empty[A]()
	}
	result := UnsafeFromString[A](words[0])
	for _, w := range words[1:] {
		result = Append(result, Append(LineBreakHint[A](), UnsafeFromString[A](w)))
	}
	return result
}

// Separated intersperses sep between consecutive elements of ds.
func Separated[A any](sep Document[A], ds []Document[A]) Document[A] {
	result := Empty[A]()
	for i, d := range ds {
		if i > 0 {
			result = Append(result, sep)
		}
		result = Append(result, d)
	}
	return result
}

// SeparatedAndTerminated is [Separated] plus a trailing sep after the last
// element.
func SeparatedAndTerminated[A any](sep Document[A], ds []Document[A]) Document[A] {
	result := Empty[A]()
	for _, d := range ds {
		result = Append(result, Append(d, sep))
	}
	return result
}
