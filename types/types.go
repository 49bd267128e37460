package types

// Phase is the state of a criteria-collection session.
type Phase string

const (
	PhaseAwaitingUserInput    Phase = "awaiting_user_input"
	PhaseAwaitingServiceReply Phase = "awaiting_service_reply"
	PhaseTerminated           Phase = "terminated"
)
