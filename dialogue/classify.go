package dialogue

import "strings"

// ClassifyReply decides whether a reply continues the conversation or carries
// the terminal record. Only the leading non-whitespace character is inspected:
// a '{' means terminal record. Blank replies are malformed.
func ClassifyReply(content string) ReplyKind {
	trimmed := strings.TrimSpace(content)
	switch {
	case trimmed == "":
		return ReplyMalformed
	case strings.HasPrefix(trimmed, "{"):
		return ReplyTerminalRecord
	default:
		return ReplyConversational
	}
}
