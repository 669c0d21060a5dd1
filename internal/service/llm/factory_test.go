package llm

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"arbor/internal/config"
	llmSvc "arbor/internal/domain/services/llm"
)

func TestSetupProvider_Lorem(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{DefaultProvider: "lorem"}

	provider, err := SetupProvider(cfg, logger)
	if err != nil {
		t.Fatalf("SetupProvider failed: %v", err)
	}
	if provider.Name() != "lorem" {
		t.Errorf("expected lorem provider, got %s", provider.Name())
	}

	reply, err := provider.Complete(context.Background(), &llmSvc.CompletionRequest{
		Messages: []llmSvc.Message{{Role: "user", Content: "Hello"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply == "" {
		t.Error("expected non-empty lorem reply")
	}
}

func TestSetupProvider_AnthropicRequiresKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{DefaultProvider: "anthropic"}

	if _, err := SetupProvider(cfg, logger); err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestSetupProvider_Unsupported(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &config.Config{DefaultProvider: "gpt-organizer"}

	if _, err := SetupProvider(cfg, logger); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
