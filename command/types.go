package command

import "context"

type Command string

const (
	// Answer is an ordinary user turn that goes to the model.
	Answer Command = "answer"
	// Exit abandons the session.
	Exit Command = "exit"
	// Empty input is re-prompted without touching the transcript.
	Empty Command = "empty"
)

type Parser interface {
	ParseCommand(ctx context.Context, input string) (Command, error)
}
