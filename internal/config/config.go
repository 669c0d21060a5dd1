package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	CORSOrigins string `yaml:"cors_origins"`
	// Completion provider configuration
	AnthropicAPIKey string `yaml:"-"` // secrets come from env only
	DefaultProvider string `yaml:"default_provider"`
	DefaultModel    string `yaml:"default_model"`
	MaxReplyTokens  int    `yaml:"max_reply_tokens"`
	SystemPrompt    string `yaml:"system_prompt"`
	// Logging
	LogDir      string `yaml:"log_dir"` // when set, logs also go to timestamped files
	LogMaxFiles int    `yaml:"log_max_files"`
	// Debug flags
	Debug bool `yaml:"debug"`
}

// Load builds the configuration from environment variables, with an
// optional YAML file (CONFIG_FILE) overlaid first. Environment always wins
// so deployments can override a checked-in file.
func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:            "8080",
		Environment:     env,
		CORSOrigins:     "http://localhost:3000",
		DefaultProvider: "anthropic",
		DefaultModel:    "claude-haiku-4-5-20251001",
		MaxReplyTokens:  4096,
		SystemPrompt:    "You are a helpful assistant in a branching conversation. Answer the latest user message using only the ancestor messages as context.",
		LogMaxFiles:     10,
		Debug:           env != "prod",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", "")
	cfg.DefaultProvider = getEnv("DEFAULT_PROVIDER", cfg.DefaultProvider)
	cfg.DefaultModel = getEnv("DEFAULT_MODEL", cfg.DefaultModel)
	cfg.SystemPrompt = getEnv("SYSTEM_PROMPT", cfg.SystemPrompt)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)

	if v := os.Getenv("MAX_REPLY_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_REPLY_TOKENS: %q", v)
		}
		cfg.MaxReplyTokens = n
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug = v == "true"
	}

	return cfg, nil
}

// loadFile overlays settings from a YAML file onto the defaults.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
