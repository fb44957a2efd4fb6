package quiz

import (
	"errors"
	"testing"
	"time"
)

func TestValidateAuthored(t *testing.T) {
	tests := []struct {
		name      string
		q         Question
		wantField string
	}{
		{
			name:      "empty text",
			q:         Question{Text: "  ", Options: []string{"a", "b"}, Answer: SingleAnswer(0)},
			wantField: "question",
		},
		{
			name:      "one option",
			q:         Question{Text: "Q?", Options: []string{"a", " "}, Answer: SingleAnswer(0)},
			wantField: "options",
		},
		{
			name:      "single answer missing",
			q:         Question{Text: "Q?", Options: []string{"a", "b"}},
			wantField: "correctAnswer",
		},
		{
			name:      "multi answer empty",
			q:         Question{Text: "Select all that apply.", Options: []string{"a", "b"}},
			wantField: "correctAnswer",
		},
		{
			name:      "answer out of range",
			q:         Question{Text: "Q?", Options: []string{"a", "b"}, Answer: SingleAnswer(5)},
			wantField: "correctAnswer",
		},
		{
			name: "valid single",
			q:    Question{Text: "Q?", Options: []string{"a", "b"}, Answer: SingleAnswer(1)},
		},
		{
			name: "valid multi",
			q:    Question{Text: "Choose all that apply.", Options: []string{"a", "b", "c"}, Answer: MultiAnswer(0, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.q.Normalize()
			err := ValidateAuthored(&tt.q)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateAuthored() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateAuthored() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestPrepareAuthored_FillsExplanation(t *testing.T) {
	q := Question{Text: "Q?", Options: []string{"a", "b", ""}, Answer: SingleAnswer(0)}
	PrepareAuthored(&q)
	if q.Explanation != DefaultExplanation {
		t.Errorf("Explanation = %q, want placeholder", q.Explanation)
	}
	if len(q.Options) != 2 {
		t.Errorf("len(Options) = %d, want 2", len(q.Options))
	}
}

func TestNewID_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := range 100 {
		id := NewID(now, i)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
