package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/styleadvisor"
)

var _ adk.Agent = (*Agent)(nil)

// Agent exposes an advisor engine as an adk.Agent. Each Run feeds the last
// input message to the session routed by WithSessionKey.
type Agent struct {
	name        string
	description string
	engine      *styleadvisor.Engine
	sessions    *SessionStore
}

func NewAgent(name, description string, engine *styleadvisor.Engine, sessions *SessionStore) *Agent {
	if sessions == nil {
		sessions = NewMemorySessionStore(engine)
	}
	return &Agent{
		name:        name,
		description: description,
		engine:      engine,
		sessions:    sessions,
	}
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

// Sessions returns the store the agent routes sessions through.
func (a *Agent) Sessions() *SessionStore {
	return a.sessions
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			e := recover()
			if e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if input == nil || len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no messages in input"),
			})
			return
		}
		turn, err := a.step(ctx, input.Messages[len(input.Messages)-1].Content)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("advisor step failed: %w", err),
			})
			return
		}
		gen.Send(&adk.AgentEvent{
			AgentName: a.name,
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message:     schema.AssistantMessage(replyText(turn), nil),
					Role:        schema.Assistant,
				},
			},
		})
	}()
	return iter
}

func (a *Agent) step(ctx context.Context, input string) (*styleadvisor.Turn, error) {
	unlock := a.sessions.Lock(ctx)
	defer unlock()

	session, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	turn, err := a.engine.Step(ctx, session, input)
	if sErr := a.sessions.Save(ctx, session); sErr != nil {
		slog.Error("failed to save session", "session_id", session.ID, "err", sErr)
		if err == nil {
			err = sErr
		}
	}
	return turn, err
}

func replyText(turn *styleadvisor.Turn) string {
	switch turn.Outcome {
	case styleadvisor.OutcomeReprompt:
		return styleadvisor.RepromptNotice
	case styleadvisor.OutcomeAborted:
		return styleadvisor.EndedNotice
	default:
		return turn.Message
	}
}
