package llm

import (
	"context"
	"strings"
)

// Role tags for chat messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry in the ordered conversation sent to the
// model.
type Message struct {
	Role    string
	Content string
}

// Request describes a single chat completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client is the boundary to a chat-completion provider. Implementations
// return the single text completion or an error; callers degrade errors to a
// placeholder message.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// KnownModels enumerates the selectable model identifiers.
var KnownModels = []string{"gpt-4o", "gpt-4-turbo", "gpt-3.5-turbo", "gemini-2.0-flash"}

// IsGeminiModel reports whether a model identifier belongs to the Gemini
// backend.
func IsGeminiModel(model string) bool {
	return strings.HasPrefix(model, "gemini")
}
