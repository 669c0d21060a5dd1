package llm

import (
	"context"

	lorem "github.com/drhodes/golorem"

	llmSvc "arbor/internal/domain/services/llm"
)

// LoremProvider is a keyless testing provider that generates lorem ipsum
// text. Useful for local development and for exercising the full exchange
// flow without a provider account.
type LoremProvider struct{}

// NewLoremProvider creates a lorem provider instance.
func NewLoremProvider() *LoremProvider {
	return &LoremProvider{}
}

// Name implements the Provider interface.
func (p *LoremProvider) Name() string {
	return "lorem"
}

// Complete ignores the conversation context and fabricates a short reply.
func (p *LoremProvider) Complete(ctx context.Context, req *llmSvc.CompletionRequest) (string, error) {
	return lorem.Paragraph(1, 3), nil
}
