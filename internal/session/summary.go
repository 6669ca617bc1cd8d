package session

import (
	"fmt"
	"strings"
)

const (
	// MaxRecentMessages is the number of user messages kept for context.
	MaxRecentMessages = 5

	maxSummaryMessageLen = 100
)

// MessageHistory keeps the most recent user messages.
type MessageHistory struct {
	Messages []string `json:"messages"`
}

// Add appends msg, dropping the oldest beyond MaxRecentMessages.
func (h *MessageHistory) Add(msg string) {
	h.Messages = append(h.Messages, msg)
	if len(h.Messages) > MaxRecentMessages {
		h.Messages = append([]string(nil), h.Messages[len(h.Messages)-MaxRecentMessages:]...)
	}
}

// Recent returns a copy of the kept messages, oldest first.
func (h *MessageHistory) Recent() []string {
	return append([]string(nil), h.Messages...)
}

// ContextSummary renders the recent messages for the general-question
// prompt. It returns "" when there is no history.
func (h *MessageHistory) ContextSummary() string {
	if len(h.Messages) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Recent conversation context:\n")
	for i, msg := range h.Messages {
		fmt.Fprintf(&b, "%d. %s\n", i+1, truncate(msg, maxSummaryMessageLen))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
