package command

import (
	"context"
	"strings"
)

// DefaultExitKeywords end a session when typed on their own.
var DefaultExitKeywords = []string{"exit", "quit", "stop"}

type LocalCommandParser struct {
	ExitKeywords []string
}

func NewLocalCommandParser() *LocalCommandParser {
	return &LocalCommandParser{
		ExitKeywords: append([]string{}, DefaultExitKeywords...),
	}
}

func (p *LocalCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Empty, nil
	}
	for _, keyword := range p.ExitKeywords {
		if normalized == strings.ToLower(keyword) {
			return Exit, nil
		}
	}
	return Answer, nil
}

var _ Parser = (*LocalCommandParser)(nil)
