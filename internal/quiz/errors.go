package quiz

import "fmt"

// ValidationError indicates bad user input that the user can correct
// locally. No state is changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// FormatError indicates an import payload whose shape is neither a question
// list nor an object with a questions field.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid file format: %v", e.Err)
	}
	return "invalid file format"
}

func (e *FormatError) Unwrap() error { return e.Err }

// EmptyError indicates a well-formed import payload containing zero
// questions.
type EmptyError struct{}

func (e *EmptyError) Error() string { return "no questions found in file" }

// ParseError indicates a malformed structured response from an external
// service. Truncated is set when the reply's stop condition indicates it
// was cut off, so callers can surface a truncation hint.
type ParseError struct {
	Err       error
	Truncated bool
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse response: %v", e.Err)
	if e.Truncated {
		msg += " (the response may have been truncated)"
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConflictError indicates an operation rejected because it would violate a
// store invariant, e.g. deleting the last remaining question set.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// NoOpError indicates a merge import that found nothing to change. It is
// informational, not a failure: the caller presents a distinct message and
// performs no store mutation.
type NoOpError struct{}

func (e *NoOpError) Error() string {
	return "all questions already exist; nothing to update"
}
