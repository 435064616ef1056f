package providers

import (
	"context"
	"strings"
)

// Message is one turn of a model conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider abstracts a generative-model backend. Models returns the fixed,
// ordered list of model variants the backend should be tried with, most
// capable first.
type Provider interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
	Models() []string
	Name() string
}

// JoinMessages flattens a conversation into a single prompt for backends
// that accept only plain text. System content leads, separated by a blank
// line.
func JoinMessages(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n\n")
}
