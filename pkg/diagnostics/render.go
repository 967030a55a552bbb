package diagnostics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mockstub/mockstub/pkg/mock"
)

// Renderer composes assertion-failure diagnostics as text, with optional
// ANSI colorization enabled or disabled at construction time. When
// disabled, plain text is emitted.
type Renderer struct {
	colorize bool
	ok       lipgloss.Style
	mismatch lipgloss.Style
	heading  lipgloss.Style
}

// NewRenderer builds a Renderer. When colorize is false every style is a
// no-op and the output is plain text.
func NewRenderer(colorize bool) *Renderer {
	r := &Renderer{colorize: colorize}
	if colorize {
		r.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		r.mismatch = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		r.heading = lipgloss.NewStyle().Bold(true)
	}
	return r
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.colorize {
		return text
	}
	return s.Render(text)
}

// RenderAssertionFailure composes the mock description, hits vs. expected
// range, and a diff against the last unmatched request (if any).
func (r *Renderer) RenderAssertionFailure(rec *mock.Record, diff *Diff) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.style(r.heading, "mock not satisfied:"))
	fmt.Fprintf(&b, "  %s\n", rec.Description())

	lower, upper := rec.ExpectedRange()
	expected := fmt.Sprintf(">= %d", lower)
	if upper != nil {
		if lower == *upper {
			expected = fmt.Sprintf("exactly %d", lower)
		} else {
			expected = fmt.Sprintf("between %d and %d", lower, *upper)
		}
	}
	fmt.Fprintf(&b, "  expected %s calls, got %d\n", expected, rec.Hits())

	if diff == nil {
		fmt.Fprintf(&b, "  (no unmatched requests recorded)\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", r.style(r.heading, "last unmatched request:"))
	for _, f := range diff.Fields {
		marker := r.style(r.ok, "match")
		if !f.Matched {
			marker = r.style(r.mismatch, "mismatch")
		}
		fmt.Fprintf(&b, "  [%s] %-12s expected=%s actual=%s\n", marker, f.Field, f.Expected, f.Actual)
	}
	return b.String()
}
