package dialogue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// DefaultMaxTokens bounds each reply.
const DefaultMaxTokens = 256

// ModelReplyGenerator asks a chat model for the next assistant turn.
type ModelReplyGenerator struct {
	chatModel           model.BaseChatModel
	modelName           string
	maxTokens           int
	instructionAsSystem bool
}

type generatorOptions struct {
	modelName           string
	maxTokens           int
	instructionAsSystem bool
}

type GeneratorOption func(*generatorOptions)

// WithModelName sets the target model identifier sent with every request.
func WithModelName(name string) GeneratorOption {
	return func(o *generatorOptions) {
		o.modelName = name
	}
}

// WithMaxTokens sets the per-reply token budget.
func WithMaxTokens(n int) GeneratorOption {
	return func(o *generatorOptions) {
		o.maxTokens = n
	}
}

// WithInstructionAsSystem sends the instruction in the system slot instead of
// as the leading user message.
func WithInstructionAsSystem(enabled bool) GeneratorOption {
	return func(o *generatorOptions) {
		o.instructionAsSystem = enabled
	}
}

func NewModelReplyGenerator(chatModel model.BaseChatModel, opts ...GeneratorOption) *ModelReplyGenerator {
	options := generatorOptions{maxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.maxTokens <= 0 {
		options.maxTokens = DefaultMaxTokens
	}
	return &ModelReplyGenerator{
		chatModel:           chatModel,
		modelName:           options.modelName,
		maxTokens:           options.maxTokens,
		instructionAsSystem: options.instructionAsSystem,
	}
}

func (g *ModelReplyGenerator) GenerateReply(ctx context.Context, req *Request) (*schema.Message, error) {
	messages := g.buildMessages(req)
	opts := []model.Option{model.WithMaxTokens(g.maxTokens)}
	if g.modelName != "" {
		opts = append(opts, model.WithModel(g.modelName))
	}

	slog.Debug("requesting advisor reply", "turns", len(req.Transcript), "max_tokens", g.maxTokens)
	resp, err := g.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	if resp == nil {
		return nil, NewMalformedResponseError(nil)
	}
	slog.Debug("advisor replied", "reply_len", len(resp.Content))
	return resp, nil
}

func (g *ModelReplyGenerator) buildMessages(req *Request) []*schema.Message {
	messages := make([]*schema.Message, 0, len(req.Transcript)+1)
	if g.instructionAsSystem {
		messages = append(messages, schema.SystemMessage(req.Instruction))
	} else {
		messages = append(messages, schema.UserMessage(req.Instruction))
	}
	return append(messages, req.Transcript...)
}

var _ ReplyGenerator = (*ModelReplyGenerator)(nil)
