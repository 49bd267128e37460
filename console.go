package styleadvisor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	RepromptNotice = "Please enter an answer."
	EndedNotice    = "Conversation ended."

	// FinalRecordPrefix precedes the terminal record when a session completes.
	FinalRecordPrefix = "Final JSON: "
)

// Console is the user-facing side of a session.
type Console interface {
	// ShowAssistant displays an assistant turn.
	ShowAssistant(text string)
	// Notice displays a status line that is not part of the transcript.
	Notice(text string)
	// ReadLine blocks for the next user line. io.EOF ends the session.
	ReadLine() (string, error)
}

// LineConsole is a plain-text Console over a reader and writer.
type LineConsole struct {
	Prompt string
	in     *bufio.Reader
	out    io.Writer
}

func NewLineConsole(in io.Reader, out io.Writer) *LineConsole {
	return &LineConsole{
		Prompt: "You: ",
		in:     bufio.NewReader(in),
		out:    out,
	}
}

func (c *LineConsole) ShowAssistant(text string) {
	_, _ = fmt.Fprintln(c.out, text)
}

func (c *LineConsole) Notice(text string) {
	_, _ = fmt.Fprintln(c.out, text)
}

func (c *LineConsole) ReadLine() (string, error) {
	_, _ = fmt.Fprint(c.out, c.Prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var _ Console = (*LineConsole)(nil)
