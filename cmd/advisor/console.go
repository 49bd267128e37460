package main

import (
	"fmt"
	"io"

	"github.com/tbxark/styleadvisor"
)

// styledConsole decorates the line console with lipgloss styles.
type styledConsole struct {
	*styleadvisor.LineConsole
	out io.Writer
}

func newStyledConsole(in io.Reader, out io.Writer) *styledConsole {
	line := styleadvisor.NewLineConsole(in, out)
	line.Prompt = userStyle.Render("You: ")
	return &styledConsole{LineConsole: line, out: out}
}

func (c *styledConsole) ShowAssistant(text string) {
	_, _ = fmt.Fprintf(c.out, "\n%s%s\n", advisorStyle.Render("Advisor: "), text)
}

func (c *styledConsole) Notice(text string) {
	_, _ = fmt.Fprintln(c.out, noticeStyle.Render(text))
}

var _ styleadvisor.Console = (*styledConsole)(nil)
