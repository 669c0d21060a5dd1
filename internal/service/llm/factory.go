package llm

import (
	"fmt"
	"log/slog"

	"arbor/internal/config"
	llmSvc "arbor/internal/domain/services/llm"
)

// SetupProvider creates the completion provider named by the configuration.
//
// Supported providers:
//   - "anthropic" - Claude models via Anthropic API
//   - "lorem" - Mock provider for testing (no API key required)
func SetupProvider(cfg *config.Config, logger *slog.Logger) (llmSvc.Provider, error) {
	switch cfg.DefaultProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		provider, err := NewAnthropicProvider(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		logger.Info("completion provider ready", "provider", provider.Name(), "model", cfg.DefaultModel)
		return provider, nil

	case "lorem":
		provider := NewLoremProvider()
		logger.Warn("using lorem mock provider (no real completions)")
		return provider, nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.DefaultProvider)
	}
}
