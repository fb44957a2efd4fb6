package impex

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
)

// Mode selects how imported questions are combined with existing ones.
type Mode int

const (
	// ModeMerge matches imported questions against existing ones by id or
	// normalized text, updating matches and appending the rest.
	ModeMerge Mode = iota

	// ModeReplace discards the existing questions, and their practice
	// history, entirely.
	ModeReplace
)

// Report summarizes what a reconciliation changed.
type Report struct {
	Updated int
	Added   int
}

// Reconcile combines imported questions with an existing list.
//
// In merge mode, each imported question is matched by identical id, then by
// normalized question text. A match replaces the existing question's content
// but keeps the existing id, and keeps the existing performance history
// unless the import explicitly carries its own: an upstream edit to text or
// options must not silently reset practice history. Unmatched imports are
// appended. Result order: existing questions first (content possibly
// replaced), then new questions in import order.
//
// Returns a *quiz.NoOpError when a merge finds nothing to update or add, so
// callers can skip the store mutation and show a distinct message.
func Reconcile(existing, imported []quiz.Question, mode Mode, now time.Time) ([]quiz.Question, Report, error) {
	AssignMissingIDs(imported, now)

	if mode == ModeReplace {
		result := append([]quiz.Question(nil), imported...)
		return result, Report{Added: len(result)}, nil
	}

	byID := make(map[string]int, len(existing))
	byText := make(map[string]int, len(existing))
	for i, q := range existing {
		byID[q.ID] = i
		byText[NormalizeText(q.Text)] = i
	}

	result := append([]quiz.Question(nil), existing...)
	var report Report

	for _, imp := range imported {
		idx, matched := byID[imp.ID]
		if !matched {
			idx, matched = byText[NormalizeText(imp.Text)]
			if matched {
				// Text rematch keeps the existing id, never the imported one.
				imp.ID = existing[idx].ID
			}
		}

		if !matched {
			result = append(result, imp)
			report.Added++
			continue
		}

		merged := imp
		if merged.Performance == (quiz.Performance{}) {
			merged.Performance = existing[idx].Performance
		}
		if !contentEqual(result[idx], merged) {
			result[idx] = merged
			report.Updated++
		}
	}

	if report.Updated == 0 && report.Added == 0 {
		return nil, report, &quiz.NoOpError{}
	}
	return result, report, nil
}

// NormalizeText canonicalizes question text for matching: trimmed,
// lowercased, internal whitespace collapsed.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func contentEqual(a, b quiz.Question) bool {
	return a.ID == b.ID &&
		a.Text == b.Text &&
		slices.Equal(a.Options, b.Options) &&
		a.Answer.Equal(b.Answer) &&
		a.Explanation == b.Explanation &&
		a.Performance == b.Performance
}
