package styleadvisor

import (
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/types"
)

// Session is one criteria-collection conversation. It is owned by the caller
// and must not be stepped concurrently.
type Session struct {
	ID string

	phase        types.Phase
	transcript   []*schema.Message
	result       *criteria.Criteria
	serviceCalls int
}

func newSession(opening string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		phase:      types.PhaseAwaitingUserInput,
		transcript: []*schema.Message{schema.AssistantMessage(opening, nil)},
	}
}

func (s *Session) Phase() types.Phase {
	return s.phase
}

func (s *Session) Terminated() bool {
	return s.phase == types.PhaseTerminated
}

// Aborted reports whether the session ended without a record.
func (s *Session) Aborted() bool {
	return s.Terminated() && s.result == nil
}

// Result is the normalized criteria, or nil until the session completes.
func (s *Session) Result() *criteria.Criteria {
	return s.result
}

// ServiceCalls counts requests made to the text-generation service.
func (s *Session) ServiceCalls() int {
	return s.serviceCalls
}

// Transcript returns a copy of the turns so far.
func (s *Session) Transcript() []*schema.Message {
	return append([]*schema.Message{}, s.transcript...)
}

// LatestQuestion is the content of the most recent assistant turn.
func (s *Session) LatestQuestion() string {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Role == schema.Assistant {
			return s.transcript[i].Content
		}
	}
	return ""
}

func (s *Session) append(msg *schema.Message) {
	s.transcript = append(s.transcript, msg)
}

func (s *Session) terminate(result *criteria.Criteria) {
	s.phase = types.PhaseTerminated
	s.result = result
}
