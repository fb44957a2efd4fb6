package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdrill/internal/ui/components"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch m.phase {
	case phaseOrdering:
		content = m.viewOrdering()
	case phasePracticing:
		content = m.viewQuestion()
	case phaseComplete:
		content = m.viewComplete()
	}

	v.SetContent(content)
	return v
}

func (m Model) viewOrdering() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(m.cfg.Set.Name) + "\n\n")
	b.WriteString(m.spinner.View() + theme.Body.Render(" Working out the best practice order...") + "\n\n")
	b.WriteString(theme.Hint.Render("Esc to cancel") + "\n")
	return b.String()
}

func (m Model) viewQuestion() string {
	q := m.session.Current()
	if q == nil {
		return ""
	}
	idx := m.session.Index()
	score := m.session.Score()

	var b strings.Builder
	b.WriteString(theme.Title.Render(m.cfg.Set.Name))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  ·  Question %d of %d  ·  Score %d/%d",
		idx+1, m.session.Len(), score.Correct, score.Total)))
	b.WriteString("\n")
	b.WriteString(m.renderDots() + "\n\n")

	if m.notice != "" {
		b.WriteString(theme.Hint.Foreground(theme.Warning).Render(m.notice) + "\n\n")
	}

	width := m.width - 4
	if width > 80 {
		width = 80
	}
	b.WriteString(theme.Card.Width(width).Render(theme.Body.Render(q.Text)) + "\n\n")

	list := components.OptionList{
		Options:  q.Options,
		Multi:    q.IsMultiAnswer(),
		Cursor:   m.cursor,
		Selected: m.session.Selected,
		Revealed: m.session.Revealed(),
		Correct:  q.Answer.Indices(),
	}
	b.WriteString(list.View() + "\n")

	if m.session.Revealed() {
		b.WriteString("\n" + m.renderVerdict() + "\n")
		if q.Explanation != "" {
			b.WriteString(theme.Hint.Render(q.Explanation) + "\n")
		}
	}

	b.WriteString("\n" + m.renderFooter())
	return b.String()
}

func (m Model) renderVerdict() string {
	q := m.session.Current()
	correct := m.session.Results()[q.Key(m.session.Index())]
	if correct {
		return theme.Correct.Render("✓ Correct!")
	}
	return theme.Incorrect.Render("✗ Incorrect")
}

func (m Model) renderDots() string {
	results := m.session.Results()
	dots := components.ProgressDots{
		Total:   m.session.Len(),
		Current: m.session.Index(),
		Outcome: func(i int) (bool, bool) {
			correct, answered := results[m.questions[i].Key(i)]
			return correct, answered
		},
	}
	return dots.View()
}

func (m Model) renderFooter() string {
	var hints []string
	if m.session.Revealed() {
		hints = []string{"enter next", "←/→ jump", "ctrl+c quit"}
	} else {
		q := m.session.Current()
		pick := "space select"
		if q != nil && q.IsMultiAnswer() {
			pick = "space toggle"
		}
		hints = []string{"↑/↓ move", pick, "1-9 pick", "enter submit", "←/→ jump", "ctrl+c quit"}
	}
	return theme.Footer.Render(strings.Join(hints, "  ·  "))
}

func (m Model) viewComplete() string {
	score := m.session.Score()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Session complete") + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d/%d", score.Correct, score.Total)))
	if score.Total > 0 {
		pct := float64(score.Correct) / float64(score.Total) * 100
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  (%.0f%%)", pct)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderDots() + "\n\n")
	b.WriteString(theme.Footer.Render("r restart  ·  q quit") + "\n")
	return b.String()
}
