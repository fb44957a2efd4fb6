package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// ProgressDots shows one marker per question: green for answered correctly,
// rose for answered incorrectly, dim for unanswered, with the current
// question highlighted.
type ProgressDots struct {
	Total   int
	Current int

	// Outcome returns (correct, answered) for a question position.
	Outcome func(index int) (bool, bool)
}

// View renders the marker strip.
func (p ProgressDots) View() string {
	var b strings.Builder
	for i := 0; i < p.Total; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p.renderDot(i))
	}
	return b.String()
}

func (p ProgressDots) renderDot(i int) string {
	glyph := "·"
	style := lipgloss.NewStyle().Foreground(theme.TextDim)

	if p.Outcome != nil {
		if correct, answered := p.Outcome(i); answered {
			if correct {
				glyph = "✓"
				style = lipgloss.NewStyle().Foreground(theme.Success)
			} else {
				glyph = "✗"
				style = lipgloss.NewStyle().Foreground(theme.Error)
			}
		}
	}

	if i == p.Current {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(glyph)
}
