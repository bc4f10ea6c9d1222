package pretty

import "fmt"

// PageWidth bounds how wide a rendered line may be.
type PageWidth struct {
	// Width is the maximum number of columns per line, including
	// indentation.
	Width int
	// RibbonRatio limits the non-indentation portion of a line to
	// Width*RibbonRatio columns. Must be in (0, 1].
	RibbonRatio float64
}

// ribbon returns the number of non-indentation columns available per line.
func (p PageWidth) ribbon() float64 {
	return float64(p.Width) * p.RibbonRatio
}

func (p PageWidth) validate() error {
	if p.Width < 0 {
		return &ValidationError{Msg: fmt.Sprintf("PageWidth.Width must be non-negative, got %d", p.Width)}
	}
	if p.RibbonRatio <= 0 || p.RibbonRatio > 1 {
		return &ValidationError{Msg: fmt.Sprintf("PageWidth.RibbonRatio must be in (0, 1], got %g", p.RibbonRatio)}
	}
	return nil
}

// LayoutMode selects which of the three layout engines [Render] uses.
type LayoutMode int

const (
	// Default is the stack-driven, one-line-lookahead backtracking engine.
	Default LayoutMode = iota
	// Simple walks the document directly with no choice resolution: every
	// [Alternative] takes its default branch, every [Choice] takes its
	// second (non-flat) branch. Indentation and alignment are ignored.
	Simple
	// Smart extends Default: lookahead is widened across an [Aligned]
	// block by deferring its flush until the block is left, at the cost
	// of unbounded buffering inside that block.
	Smart
)

func (m LayoutMode) String() string {
	switch m {
	case Default:
		return "default"
	case Simple:
		return "simple"
	case Smart:
		return "smart"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

func (m LayoutMode) valid() bool {
	return m == Default || m == Simple || m == Smart
}

// LayoutOptions configures [Render].
type LayoutOptions struct {
	// PageWidth bounds line width; nil means unbounded, in which case
	// every [Choice] takes its first branch and no line break is ever
	// introduced beyond the [HardLine]s already present in the document.
	PageWidth *PageWidth
	// LayoutMode selects the engine. Zero value is Default.
	LayoutMode LayoutMode
	// DefaultNesting is the indent amount used by [Nested] (as opposed to
	// [NestedBy], which takes its own amount). Must be non-negative.
	DefaultNesting int
	// StripTrailingWhitespace elides a buffered WhiteSpace instruction
	// when no Text instruction follows it before the next newline (or end
	// of input). Defaults to true in [DefaultLayoutOptions].
	StripTrailingWhitespace bool
}

// DefaultLayoutOptions returns the options spec.md documents as defaults:
// an 80-column page with a 1.0 ribbon ratio, the Default layout mode, a
// 4-column default indent, and trailing-whitespace stripping enabled.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		PageWidth:               &PageWidth{Width: 80, RibbonRatio: 1.0},
		LayoutMode:              Default,
		DefaultNesting:          4,
		StripTrailingWhitespace: true,
	}
}

// Validate reports whether opts describes a renderable configuration.
// [Render] calls it first and returns its error; calling it directly lets a
// caller that builds LayoutOptions from untrusted input (e.g. a
// user-supplied width) check them before rendering.
func (opts LayoutOptions) Validate() error {
	if opts.PageWidth != nil {
		if err := opts.PageWidth.validate(); err != nil {
			return err
		}
	}
	if !opts.LayoutMode.valid() {
		return &ValidationError{Msg: fmt.Sprintf("invalid LayoutMode: %d", int(opts.LayoutMode))}
	}
	if opts.DefaultNesting < 0 {
		return &ValidationError{Msg: fmt.Sprintf("DefaultNesting must be non-negative, got %d", opts.DefaultNesting)}
	}
	return nil
}
