package impex

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
)

// ExportVersion is the version stamp written into export envelopes.
const ExportVersion = "1.0"

// Export is the serializable snapshot of a question set. It round-trips
// through ParsePayload unchanged in content.
type Export struct {
	Version       string          `json:"version"`
	ExportDate    string          `json:"exportDate"`
	QuestionCount int             `json:"questionCount"`
	Questions     []quiz.Question `json:"questions"`
}

// BuildExport wraps a set's questions in the export envelope.
func BuildExport(questions []quiz.Question, now time.Time) Export {
	return Export{
		Version:       ExportVersion,
		ExportDate:    now.UTC().Format(time.RFC3339),
		QuestionCount: len(questions),
		Questions:     questions,
	}
}

// ExportFilename derives the suggested download name for a set export:
// the sanitized set name plus the date, e.g. "os-final-2025-06-01.json".
func ExportFilename(setName string, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(setName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return fmt.Sprintf("%s-%s.json", b.String(), now.Format("2006-01-02"))
}
