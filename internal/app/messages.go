package app

import (
	"github.com/abhisek/quizdrill/internal/quiz"
)

// orderReadyMsg delivers the materialized practice order. It is tagged with
// the set id it was requested for so a result that arrives after the user
// moved on is discarded instead of clobbering the new session.
type orderReadyMsg struct {
	setID     string
	questions []quiz.Question

	// warn is non-nil when the model could not produce an order and the
	// stored order was used instead.
	warn error
}

// resultsSavedMsg reports the outcome of persisting session results.
type resultsSavedMsg struct {
	err error
}
