package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings sourced from the environment. A .env
// file in the working directory is loaded first when present, but real
// environment variables always win over it. Command line flags are
// applied on top by the caller.
type Config struct {
	Provider     string `env:"UNTERTITEL_PROVIDER" envDefault:"openai"`
	Language     string `env:"UNTERTITEL_LANGUAGE" envDefault:"de"`
	OutputDir    string `env:"UNTERTITEL_OUTPUT_DIR" envDefault:"output"`
	Model        string `env:"UNTERTITEL_MODEL"`
	ChunkMinutes int    `env:"UNTERTITEL_CHUNK_MINUTES" envDefault:"1"`
	Concurrency  int    `env:"UNTERTITEL_CONCURRENCY" envDefault:"3"`

	// provider for keyword extraction and chapter titles, falls back
	// to Provider when unset
	KeywordProvider string `env:"UNTERTITEL_KEYWORD_PROVIDER"`

	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
}

// Load reads configuration from .env and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider must not be empty")
	}
	if c.ChunkMinutes < 1 {
		return fmt.Errorf("chunk duration must be at least 1 minute, got %d",
			c.ChunkMinutes)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d",
			c.Concurrency)
	}
	return nil
}

// APIKey returns the configured key for a provider name, or an empty
// string when the provider is unknown or unconfigured.
func (c *Config) APIKey(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "gemini":
		return c.GeminiAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	}
	return ""
}
