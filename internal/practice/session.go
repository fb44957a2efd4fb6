// Package practice drives a single quiz session: selection, answer
// evaluation, scoring, and the per-question result log.
package practice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
)

// State is the session's position in the answer lifecycle.
type State int

const (
	// StateAwaitingSelection means the current question is shown and the
	// learner is still picking options.
	StateAwaitingSelection State = iota

	// StateAnswerRevealed means the current question has been submitted and
	// the correct answer is shown.
	StateAnswerRevealed

	// StateComplete means the last question has been answered.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingSelection:
		return "awaiting-selection"
	case StateAnswerRevealed:
		return "answer-revealed"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Score holds the running session tally.
type Score struct {
	Correct int
	Total   int
}

// AttemptRecorder receives the outcome of each submitted answer for
// questions that carry a persistent id.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, setID, questionID string, correct bool, now time.Time) error
}

// Session is a single run through an ordered question list. All methods are
// synchronous; the caller (a UI event loop) drives one transition at a time.
type Session struct {
	setID     string
	questions []quiz.Question

	idx      int
	single   int          // selected option for single-answer, -1 when none
	multi    map[int]bool // selected options for multi-answer
	revealed bool
	state    State

	score   Score
	results map[string]bool

	recorder AttemptRecorder
	now      func() time.Time
}

// NewSession starts a session over the given questions. An empty list is
// complete immediately; callers should route away instead of presenting it.
func NewSession(setID string, questions []quiz.Question, recorder AttemptRecorder) *Session {
	s := &Session{
		setID:     setID,
		questions: questions,
		single:    -1,
		multi:     make(map[int]bool),
		results:   make(map[string]bool),
		recorder:  recorder,
		now:       time.Now,
	}
	if len(questions) == 0 {
		s.state = StateComplete
	}
	return s
}

// SetID returns the set this session was started from.
func (s *Session) SetID() string { return s.setID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the 0-based position of the current question.
func (s *Session) Index() int { return s.idx }

// Current returns the question at the cursor, or nil when complete.
func (s *Session) Current() *quiz.Question {
	if s.state == StateComplete || s.idx >= len(s.questions) {
		return nil
	}
	return &s.questions[s.idx]
}

// Score returns the running tally.
func (s *Session) Score() Score { return s.score }

// Results returns the per-question outcomes recorded so far, keyed by
// question id (or positional fallback for id-less questions).
func (s *Session) Results() map[string]bool {
	out := make(map[string]bool, len(s.results))
	for k, v := range s.results {
		out[k] = v
	}
	return out
}

// SeedResults preloads prior outcomes so progress indicators survive a
// reload. Seeded entries do not affect the score.
func (s *Session) SeedResults(results map[string]bool) {
	for k, v := range results {
		s.results[k] = v
	}
}

// Revealed reports whether the current question's answer is shown.
func (s *Session) Revealed() bool { return s.revealed }

// Selection returns the currently selected option indices, sorted.
func (s *Session) Selection() []int {
	q := s.Current()
	if q == nil {
		return nil
	}
	if q.IsMultiAnswer() {
		out := make([]int, 0, len(s.multi))
		for i := range s.multi {
			out = append(out, i)
		}
		sort.Ints(out)
		return out
	}
	if s.single < 0 {
		return nil
	}
	return []int{s.single}
}

// Selected reports whether the given option index is selected.
func (s *Session) Selected(index int) bool {
	q := s.Current()
	if q == nil {
		return false
	}
	if q.IsMultiAnswer() {
		return s.multi[index]
	}
	return s.single == index
}

// SelectOption updates the selection for the current question. Single-answer
// questions replace the selection; multi-answer questions toggle membership.
// Ignored once the answer is revealed.
func (s *Session) SelectOption(index int) {
	q := s.Current()
	if q == nil || s.revealed {
		return
	}
	if index < 0 || index >= len(q.Options) {
		return
	}
	if q.IsMultiAnswer() {
		if s.multi[index] {
			delete(s.multi, index)
		} else {
			s.multi[index] = true
		}
		return
	}
	s.single = index
}

// Submit evaluates the current selection. It refuses to transition when
// nothing is selected, and is a no-op once revealed. The score, the result
// log, and the attempt record are all applied before Submit returns. A
// recorder failure does not roll the transition back; it is returned so the
// caller can tell the user the attempt was not persisted.
func (s *Session) Submit(ctx context.Context) (bool, error) {
	q := s.Current()
	if q == nil || s.revealed {
		return false, nil
	}

	selected := s.Selection()
	if len(selected) == 0 {
		return false, nil
	}

	correct := q.Answer.Matches(selected)

	s.revealed = true
	s.state = StateAnswerRevealed
	s.score.Total++
	if correct {
		s.score.Correct++
	}
	s.results[q.Key(s.idx)] = correct

	if q.ID != "" && s.recorder != nil {
		if err := s.recorder.RecordAttempt(ctx, s.setID, q.ID, correct, s.now()); err != nil {
			return true, fmt.Errorf("record attempt: %w", err)
		}
	}
	return true, nil
}

// Advance moves past a revealed answer: to the next question, or to
// completion after the last one. No-op unless the answer is revealed.
func (s *Session) Advance() {
	if s.state != StateAnswerRevealed {
		return
	}
	if s.idx+1 >= len(s.questions) {
		s.state = StateComplete
		return
	}
	s.idx++
	s.resetQuestion()
}

// JumpTo moves the cursor directly to index, abandoning any reveal state on
// the current question. Out-of-range indices are ignored, as is jumping
// after completion.
func (s *Session) JumpTo(index int) {
	if s.state == StateComplete {
		return
	}
	if index < 0 || index >= len(s.questions) {
		return
	}
	s.idx = index
	s.resetQuestion()
}

// Restart returns to the first question with a clean score and result log.
func (s *Session) Restart() {
	s.idx = 0
	s.score = Score{}
	s.results = make(map[string]bool)
	if len(s.questions) == 0 {
		s.state = StateComplete
		return
	}
	s.resetQuestion()
}

func (s *Session) resetQuestion() {
	s.single = -1
	s.multi = make(map[int]bool)
	s.revealed = false
	s.state = StateAwaitingSelection
}

// ResumeIndex returns the first question without a recorded outcome, so a
// reloaded session can pick up where it left off. Returns 0 when every
// outcome is present or none are.
func ResumeIndex(questions []quiz.Question, results map[string]bool) int {
	for i := range questions {
		if _, done := results[questions[i].Key(i)]; !done {
			return i
		}
	}
	return 0
}
