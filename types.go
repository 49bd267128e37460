package styleadvisor

import (
	"errors"

	"github.com/tbxark/styleadvisor/criteria"
)

// Outcome of a single user turn.
type Outcome string

const (
	// OutcomeReprompt means the input was blank; nothing changed.
	OutcomeReprompt Outcome = "reprompt"
	// OutcomeQuestion means the advisor asked another question.
	OutcomeQuestion Outcome = "question"
	// OutcomeCompleted means the advisor emitted the terminal record.
	OutcomeCompleted Outcome = "completed"
	// OutcomeAborted means the user typed an exit keyword.
	OutcomeAborted Outcome = "aborted"
)

type Turn struct {
	Outcome  Outcome            `json:"outcome"`
	Message  string             `json:"message,omitempty"`
	Criteria *criteria.Criteria `json:"criteria,omitempty"`
}

// ErrSessionTerminated is returned when stepping a finished session.
var ErrSessionTerminated = errors.New("session already terminated")
