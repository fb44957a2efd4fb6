package quiz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Question is a single multiple-choice question, optionally carrying the
// per-question practice history accumulated across sessions.
type Question struct {
	// ID is an opaque stable identifier, unique within a set. Assigned at
	// creation or import time if absent and never reassigned afterwards:
	// it is the merge key for import reconciliation.
	ID string `json:"id,omitempty"`

	// Text is the question prompt.
	Text string `json:"question"`

	// Options is the ordered list of answer options. At least 2.
	Options []string `json:"options"`

	// Answer holds the correct option index (single) or indices (multi).
	Answer Answer `json:"correctAnswer"`

	// Explanation is shown after the learner answers.
	Explanation string `json:"explanation,omitempty"`

	Performance
}

// Performance holds the mutable practice counters for a question.
// All fields are zero until the question is first practiced.
type Performance struct {
	TimesAnswered  int   `json:"timesAnswered,omitempty"`
	TimesCorrect   int   `json:"timesCorrect,omitempty"`
	LastAnswered   int64 `json:"lastAnswered,omitempty"` // unix milliseconds
	NextReview     int64 `json:"nextReview,omitempty"`   // unix milliseconds
	NeedsReview    bool  `json:"needsReview,omitempty"`
	IncorrectCount int   `json:"incorrectCount,omitempty"`
}

// multiAnswerPhrases are the question-text markers that declare a question
// multi-answer regardless of how many correct indices it carries.
var multiAnswerPhrases = []string{
	"select all that apply",
	"select all",
	"choose all",
	"all that apply",
	"all applicable",
	"multiple answers",
	"may select more than one",
}

// HasMultiAnswerPhrase reports whether text contains any of the
// multi-answer trigger phrases, case-insensitively.
func HasMultiAnswerPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range multiAnswerPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsMultiAnswer reports whether the question requires selecting more than
// one option. True when the answer carries more than one index, or when the
// question text contains a trigger phrase. The text wins: a single-index
// answer on a "select all that apply" question is treated as a one-element
// set.
func (q *Question) IsMultiAnswer() bool {
	return q.Answer.multi || HasMultiAnswerPhrase(q.Text)
}

// Normalize derives the answer arity from the question text. Called once at
// load/import time so scoring never re-inspects the text.
func (q *Question) Normalize() {
	if HasMultiAnswerPhrase(q.Text) {
		q.Answer.multi = true
	}
}

// UnmarshalJSON decodes a question and normalizes its answer arity.
func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*q = Question(a)
	q.Normalize()
	return nil
}

// Key returns the identity used for session result tracking: the question
// id, or a positional fallback for ephemeral id-less questions.
func (q *Question) Key(index int) string {
	if q.ID != "" {
		return q.ID
	}
	return fmt.Sprintf("ai-%d", index)
}

// Answer is the tagged single/multi representation of a question's correct
// answer. On the wire it is either a bare integer index or an array of
// indices; the dynamic shape is resolved once at decode time.
type Answer struct {
	indices []int // sorted ascending
	multi   bool  // more than one index, or text-declared multi
	array   bool  // wire shape was an array (preserved on marshal)
}

// SingleAnswer returns an Answer with one correct index.
func SingleAnswer(index int) Answer {
	return Answer{indices: []int{index}}
}

// MultiAnswer returns a multi-answer with the given correct indices.
func MultiAnswer(indices ...int) Answer {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	return Answer{indices: sorted, multi: true, array: true}
}

// Indices returns the sorted correct indices.
func (a Answer) Indices() []int {
	return append([]int(nil), a.indices...)
}

// Single returns the correct index for a single-answer question.
// ok is false when the answer is multi or empty.
func (a Answer) Single() (int, bool) {
	if a.multi || len(a.indices) != 1 {
		return 0, false
	}
	return a.indices[0], true
}

// IsEmpty reports whether no correct index is set.
func (a Answer) IsEmpty() bool {
	return len(a.indices) == 0
}

// Matches reports whether the selected indices are exactly the correct
// answer. Single-answer: one selected index equal to the correct one.
// Multi-answer: set equality, selection order irrelevant; supersets and
// subsets are incorrect.
func (a Answer) Matches(selected []int) bool {
	if !a.multi {
		return len(selected) == 1 && len(a.indices) == 1 && selected[0] == a.indices[0]
	}
	if len(selected) != len(a.indices) {
		return false
	}
	sorted := append([]int(nil), selected...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != a.indices[i] {
			return false
		}
	}
	return true
}

// Equal reports whether two answers accept the same selections.
func (a Answer) Equal(b Answer) bool {
	if a.multi != b.multi || len(a.indices) != len(b.indices) {
		return false
	}
	for i, v := range a.indices {
		if v != b.indices[i] {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts either a bare index or an array of indices.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Answer{}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var indices []int
		if err := json.Unmarshal(data, &indices); err != nil {
			return fmt.Errorf("correctAnswer: %w", err)
		}
		sort.Ints(indices)
		*a = Answer{indices: indices, multi: len(indices) > 1, array: true}
		return nil
	}

	var index int
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("correctAnswer: %w", err)
	}
	*a = Answer{indices: []int{index}}
	return nil
}

// MarshalJSON writes the answer back in its original wire shape: an array
// when it arrived as one (or was authored multi), a bare index otherwise.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.array {
		return json.Marshal(a.indices)
	}
	if len(a.indices) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(a.indices[0])
}
