package pretty

import (
	"context"
	"strings"
)

// ToString renders doc into an in-memory string using opts, or
// [DefaultLayoutOptions] if opts is omitted. It is sugar for [Render]
// against a private plain-text sink; since that sink never fails, the
// only error it can return is a [ValidationError] from opts (an
// [InternalError] bug surfaces as a panic, not a returned error).
func ToString[A any](doc Document[A], opts ...LayoutOptions) (string, error) {
	o := DefaultLayoutOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	var sb strings.Builder
	sink := &stringSink[A]{w: &sb}
	if err := Render(context.Background(), doc, sink, o); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// stringSink is ToString's private plain-text renderer, discarding
// annotations. Kept separate from the public [github.com/teleivo/pretty/render.PlainText]
// adapter because that package imports this one — reusing it here would
// cycle.
type stringSink[A any] struct {
	w *strings.Builder
}

func (s *stringSink[A]) Text(ctx context.Context, str string) error {
	s.w.WriteString(str)
	return nil
}

func (s *stringSink[A]) WhiteSpace(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		s.w.WriteByte(' ')
	}
	return nil
}

func (s *stringSink[A]) NewLine(ctx context.Context) error {
	s.w.WriteByte('\n')
	return nil
}

func (s *stringSink[A]) PushAnnotation(ctx context.Context, v A) error { return nil }

func (s *stringSink[A]) PopAnnotation(ctx context.Context) error { return nil }
