package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// OptionList renders the answer options for one question. Selection state
// lives in the practice session; this component only draws it.
type OptionList struct {
	Options []string
	Multi   bool

	// Cursor is the highlighted row.
	Cursor int

	// Selected reports whether an option index is part of the current
	// selection.
	Selected func(index int) bool

	// Revealed switches rendering from selection mode to answer mode.
	Revealed bool

	// Correct holds the correct option indices, used once revealed.
	Correct []int
}

// View renders the option rows.
func (o OptionList) View() string {
	correct := make(map[int]bool, len(o.Correct))
	for _, i := range o.Correct {
		correct[i] = true
	}

	var b strings.Builder
	for i, opt := range o.Options {
		b.WriteString(o.renderRow(i, opt, correct))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (o OptionList) renderRow(i int, opt string, correct map[int]bool) string {
	prefix := "  "
	if i == o.Cursor && !o.Revealed {
		prefix = "▸ "
	}

	selected := o.Selected != nil && o.Selected(i)

	marker := o.marker(selected)
	line := fmt.Sprintf("%s%s %d. %s", prefix, marker, i+1, opt)

	if o.Revealed {
		switch {
		case correct[i]:
			return theme.Correct.Render(line)
		case selected:
			return theme.Incorrect.Render(line)
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		}
	}

	if selected {
		return theme.Selected.Render(line)
	}
	if i == o.Cursor {
		return lipgloss.NewStyle().Foreground(theme.Primary).Render(line)
	}
	return theme.Unselected.Render(line)
}

// marker returns the checkbox or radio glyph for a row.
func (o OptionList) marker(selected bool) string {
	if o.Multi {
		if selected {
			return "[x]"
		}
		return "[ ]"
	}
	if selected {
		return "(•)"
	}
	return "( )"
}
