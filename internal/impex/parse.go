package impex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
)

// payload is the current import envelope. A bare question array is the
// legacy format and remains accepted.
type payload struct {
	Questions []quiz.Question `json:"questions"`
}

// ParsePayload decodes an import document: either a bare list of questions
// or an object with a questions field. Any other shape is a FormatError; a
// well-formed document with zero questions is an EmptyError.
func ParsePayload(raw []byte) ([]quiz.Question, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &quiz.FormatError{Err: fmt.Errorf("empty document")}
	}

	var questions []quiz.Question
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &questions); err != nil {
			return nil, &quiz.FormatError{Err: err}
		}
	case '{':
		var p payload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, &quiz.FormatError{Err: err}
		}
		if p.Questions == nil {
			return nil, &quiz.FormatError{Err: fmt.Errorf("missing questions field")}
		}
		questions = p.Questions
	default:
		return nil, &quiz.FormatError{Err: fmt.Errorf("expected array or object")}
	}

	if len(questions) == 0 {
		return nil, &quiz.EmptyError{}
	}
	return questions, nil
}

// AssignMissingIDs gives every id-less question a fresh identifier. Ids
// already present are never reassigned: they are the merge identity.
func AssignMissingIDs(questions []quiz.Question, now time.Time) {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = quiz.NewID(now, i)
		}
	}
}
