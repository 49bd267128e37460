package styleadvisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tbxark/styleadvisor/criteria"
)

// Run drives s to completion over console: show the latest assistant turn,
// read a line, step, repeat. It returns nil criteria when the user leaves.
func (e *Engine) Run(ctx context.Context, s *Session, console Console) (*criteria.Criteria, error) {
	for !s.Terminated() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		console.ShowAssistant(s.LatestQuestion())
		input, err := console.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				slog.Debug("input closed, ending session", "session_id", s.ID)
				s.terminate(nil)
				console.Notice(EndedNotice)
				return nil, nil
			}
			return nil, fmt.Errorf("read user input: %w", err)
		}

		turn, err := e.Step(ctx, s, input)
		if err != nil {
			return nil, err
		}
		switch turn.Outcome {
		case OutcomeReprompt:
			console.Notice(RepromptNotice)
		case OutcomeAborted:
			console.Notice(EndedNotice)
		case OutcomeCompleted:
			console.Notice(FinalRecordPrefix + strings.TrimSpace(turn.Message))
		}
	}
	return s.Result(), nil
}
