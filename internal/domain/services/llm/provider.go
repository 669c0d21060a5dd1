package llm

import (
	"context"
)

// Provider defines the interface that all completion providers must
// implement. The contract is deliberately opaque: conversation history in,
// a single block of text out. Streaming, tool use, and retries are outside
// this interface.
type Provider interface {
	// Complete generates a reply for the given conversation context.
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// Name returns the provider name (e.g., "anthropic", "lorem")
	Name() string
}

// Message represents a single message in the conversation.
type Message struct {
	// Role is either "user" or "assistant"
	Role string `json:"role"`

	// Content is the plain-text payload for this message
	Content string `json:"content"`
}

// CompletionRequest contains the parameters for a completion call.
type CompletionRequest struct {
	// System is the fixed system instruction prepended to every request.
	System string

	// Messages contains the conversation history, ordered root to leaf.
	Messages []Message

	// Model is the model identifier (e.g., "claude-haiku-4-5-20251001")
	Model string

	// MaxTokens caps the reply length.
	MaxTokens int
}
