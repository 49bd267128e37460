package dialogue

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ReplyKind classifies a model reply.
type ReplyKind string

const (
	ReplyConversational ReplyKind = "conversational"
	ReplyTerminalRecord ReplyKind = "terminal_record"
	ReplyMalformed      ReplyKind = "malformed"
)

type Request struct {
	Instruction string
	Transcript  []*schema.Message
}

// ReplyGenerator produces exactly one assistant reply per request.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, req *Request) (*schema.Message, error)
}
