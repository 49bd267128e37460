package styleadvisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/styleadvisor/command"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/dialogue"
	"github.com/tbxark/styleadvisor/types"
)

// Engine runs criteria-collection sessions against a text-generation service.
// It holds no per-session state and may serve many sessions.
type Engine struct {
	instruction string
	opening     string
	replies     dialogue.ReplyGenerator
	commands    command.Parser
	recoverer   *recordRecoverer
}

type engineOptions struct {
	opening         string
	instruction     string
	instructionOpts []dialogue.InstructionOption
	generatorOpts   []dialogue.GeneratorOption
	replies         dialogue.ReplyGenerator
	commands        command.Parser
	recoveryModel   model.ToolCallingChatModel
}

type Option func(*engineOptions)

// WithOpeningQuestion replaces the synthetic first assistant turn.
func WithOpeningQuestion(question string) Option {
	return func(o *engineOptions) {
		o.opening = question
	}
}

// WithInstruction replaces the generated system instruction verbatim.
func WithInstruction(instruction string) Option {
	return func(o *engineOptions) {
		o.instruction = instruction
	}
}

func WithInstructionOptions(opts ...dialogue.InstructionOption) Option {
	return func(o *engineOptions) {
		o.instructionOpts = append(o.instructionOpts, opts...)
	}
}

func WithGeneratorOptions(opts ...dialogue.GeneratorOption) Option {
	return func(o *engineOptions) {
		o.generatorOpts = append(o.generatorOpts, opts...)
	}
}

// WithReplyGenerator bypasses the chat-model generator.
func WithReplyGenerator(g dialogue.ReplyGenerator) Option {
	return func(o *engineOptions) {
		o.replies = g
	}
}

func WithCommandParser(p command.Parser) Option {
	return func(o *engineOptions) {
		o.commands = p
	}
}

// WithRecordRecovery lets the engine make one forced tool call to recover the
// record when a terminal reply does not parse. Without it such a reply is fatal.
func WithRecordRecovery(chatModel model.ToolCallingChatModel) Option {
	return func(o *engineOptions) {
		o.recoveryModel = chatModel
	}
}

func NewEngine(chatModel model.BaseChatModel, opts ...Option) (*Engine, error) {
	options := engineOptions{opening: dialogue.DefaultOpeningQuestion}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.replies == nil {
		if chatModel == nil {
			return nil, errors.New("chat model is required")
		}
		options.replies = dialogue.NewModelReplyGenerator(chatModel, options.generatorOpts...)
	}
	if options.commands == nil {
		options.commands = command.NewLocalCommandParser()
	}
	instruction := options.instruction
	if instruction == "" {
		built, err := dialogue.BuildInstruction(options.instructionOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build instruction: %w", err)
		}
		instruction = built
	}
	engine := &Engine{
		instruction: instruction,
		opening:     options.opening,
		replies:     options.replies,
		commands:    options.commands,
	}
	if options.recoveryModel != nil {
		recoverer, err := newRecordRecoverer(options.recoveryModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create record recoverer: %w", err)
		}
		engine.recoverer = recoverer
	}
	return engine, nil
}

// Instruction returns the system instruction sent with every request.
func (e *Engine) Instruction() string {
	return e.instruction
}

// NewSession starts a session seeded with the opening question.
func (e *Engine) NewSession() *Session {
	return newSession(e.opening)
}

// Step feeds one line of user input into s.
func (e *Engine) Step(ctx context.Context, s *Session, input string) (*Turn, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	if s.Terminated() {
		return nil, ErrSessionTerminated
	}
	ctx = callbacks.EnsureRunInfo(ctx, "StyleAdvisor", "Agent")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"session_id": s.ID,
		"input":      input,
		"phase":      string(s.phase),
	})

	defer func() {
		if r := recover(); r != nil {
			callbacks.OnError(ctx, fmt.Errorf("panic in Engine.Step: %v", r))
			panic(r)
		}
	}()

	turn, err := e.step(ctx, s, input)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}

	callbacks.OnEnd(ctx, map[string]any{
		"session_id": s.ID,
		"outcome":    string(turn.Outcome),
		"phase":      string(s.phase),
	})
	return turn, nil
}

func (e *Engine) step(ctx context.Context, s *Session, input string) (*Turn, error) {
	cmd, err := e.commands.ParseCommand(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	switch cmd {
	case command.Exit:
		s.terminate(nil)
		slog.Debug("session abandoned", "session_id", s.ID, "turns", len(s.transcript))
		return &Turn{Outcome: OutcomeAborted}, nil
	case command.Empty:
		return &Turn{Outcome: OutcomeReprompt, Message: s.LatestQuestion()}, nil
	}

	s.append(schema.UserMessage(strings.TrimSpace(input)))
	s.phase = types.PhaseAwaitingServiceReply

	reply, err := e.replies.GenerateReply(ctx, &dialogue.Request{
		Instruction: e.instruction,
		Transcript:  s.transcript,
	})
	s.serviceCalls++
	if err != nil {
		s.terminate(nil)
		slog.Error("advisor reply failed", "session_id", s.ID, "err", err)
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}
	s.append(schema.AssistantMessage(reply.Content, nil))

	kind := dialogue.ClassifyReply(reply.Content)
	slog.Debug("classified reply", "session_id", s.ID, "kind", kind)
	switch kind {
	case dialogue.ReplyConversational:
		s.phase = types.PhaseAwaitingUserInput
		return &Turn{Outcome: OutcomeQuestion, Message: reply.Content}, nil
	case dialogue.ReplyTerminalRecord:
		result, err := e.finish(ctx, s, reply.Content)
		if err != nil {
			s.terminate(nil)
			return nil, err
		}
		s.terminate(result)
		slog.Info("criteria collected", "session_id", s.ID, "service_calls", s.serviceCalls)
		return &Turn{Outcome: OutcomeCompleted, Message: reply.Content, Criteria: result}, nil
	default:
		s.terminate(nil)
		return nil, dialogue.NewMalformedResponseError(reply)
	}
}

func (e *Engine) finish(ctx context.Context, s *Session, content string) (*criteria.Criteria, error) {
	result, err := criteria.ParseAndNormalize(content)
	if err == nil {
		return result, nil
	}
	if e.recoverer == nil {
		return nil, err
	}
	slog.Warn("terminal record did not parse, attempting recovery", "session_id", s.ID, "err", err)
	s.serviceCalls++
	recovered, rErr := e.recoverer.recoverRecord(ctx, s.Transcript())
	if rErr != nil {
		slog.Error("record recovery failed", "session_id", s.ID, "err", rErr)
		return nil, err
	}
	return recovered, nil
}
