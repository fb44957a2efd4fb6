// Package tracker maintains per-question practice history and the fixed
// review schedule derived from it.
package tracker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/sets"
)

// Review intervals. A correct answer pushes the next review out a day; an
// incorrect one brings it back within hours.
const (
	ReviewIntervalCorrect   = 24 * time.Hour
	ReviewIntervalIncorrect = 2 * time.Hour
)

// Apply records one attempt outcome on a question's history.
func Apply(p *quiz.Performance, correct bool, now time.Time) {
	p.TimesAnswered++
	if correct {
		p.TimesCorrect++
	} else {
		p.IncorrectCount++
	}
	p.LastAnswered = now.UnixMilli()
	if correct {
		p.NextReview = now.Add(ReviewIntervalCorrect).UnixMilli()
	} else {
		p.NextReview = now.Add(ReviewIntervalIncorrect).UnixMilli()
	}
	p.NeedsReview = !correct
}

// Service persists attempt outcomes through the set store.
type Service struct {
	sets *sets.Store

	// Warnings receives notes about attempts that could not be recorded.
	// Nil discards them.
	Warnings io.Writer
}

// NewService creates a Service over the given set store.
func NewService(s *sets.Store) *Service {
	return &Service{sets: s}
}

// RecordAttempt updates the named question's history and flushes the set.
// An unknown question id is not an error: ephemeral questions are practiced
// without history, so the attempt is logged and dropped.
func (s *Service) RecordAttempt(ctx context.Context, setID, questionID string, correct bool, now time.Time) error {
	found, err := s.sets.UpdateQuestion(ctx, setID, questionID, func(q *quiz.Question) {
		Apply(&q.Performance, correct, now)
	})
	if err != nil {
		return err
	}
	if !found && s.Warnings != nil {
		fmt.Fprintf(s.Warnings, "warning: question %s not found in set %s, attempt not recorded\n", questionID, setID)
	}
	return nil
}

// Incorrect returns the questions whose most recent attempt was wrong, in
// set order.
func Incorrect(set *sets.Set) []quiz.Question {
	var out []quiz.Question
	for _, q := range set.Questions {
		if q.NeedsReview {
			out = append(out, q)
		}
	}
	return out
}

// Due returns the questions whose review time has arrived, in set order.
// Questions never practiced are not due.
func Due(set *sets.Set, now time.Time) []quiz.Question {
	var out []quiz.Question
	ms := now.UnixMilli()
	for _, q := range set.Questions {
		if q.NextReview != 0 && q.NextReview <= ms {
			out = append(out, q)
		}
	}
	return out
}

// Stats aggregates a set's practice history.
type Stats struct {
	Questions   int
	Practiced   int
	Attempts    int
	Correct     int
	NeedsReview int
}

// Accuracy returns the overall correct fraction, or 0 with no attempts.
func (s Stats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Summarize computes aggregate stats for a set.
func Summarize(set *sets.Set) Stats {
	st := Stats{Questions: len(set.Questions)}
	for _, q := range set.Questions {
		if q.TimesAnswered > 0 {
			st.Practiced++
		}
		st.Attempts += q.TimesAnswered
		st.Correct += q.TimesCorrect
		if q.NeedsReview {
			st.NeedsReview++
		}
	}
	return st
}
