package quiz

import "strings"

// DefaultExplanation is used when an authored question omits one.
const DefaultExplanation = "No explanation provided."

// ValidateAuthored checks a manually authored question before it is saved.
// Returns a *ValidationError naming the offending field; on failure no
// partial question may be persisted by the caller.
func ValidateAuthored(q *Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Field: "question", Reason: "please enter a question"}
	}

	nonEmpty := 0
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) != "" {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		return &ValidationError{Field: "options", Reason: "please enter at least 2 options"}
	}

	if q.IsMultiAnswer() {
		if q.Answer.IsEmpty() {
			return &ValidationError{Field: "correctAnswer", Reason: "please select at least one correct answer"}
		}
	} else {
		if _, ok := q.Answer.Single(); !ok {
			return &ValidationError{Field: "correctAnswer", Reason: "please select the correct answer"}
		}
	}

	for _, idx := range q.Answer.Indices() {
		if idx < 0 || idx >= len(q.Options) {
			return &ValidationError{Field: "correctAnswer", Reason: "answer index out of range"}
		}
	}

	return nil
}

// PrepareAuthored trims empty options and fills the explanation placeholder.
// Callers validate first: trimming does not reindex the answer.
func PrepareAuthored(q *Question) {
	kept := q.Options[:0]
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) != "" {
			kept = append(kept, opt)
		}
	}
	q.Options = kept
	if q.Explanation == "" {
		q.Explanation = DefaultExplanation
	}
}
