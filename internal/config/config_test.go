package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var configVars = []string{
	"UNTERTITEL_PROVIDER",
	"UNTERTITEL_LANGUAGE",
	"UNTERTITEL_OUTPUT_DIR",
	"UNTERTITEL_MODEL",
	"UNTERTITEL_CHUNK_MINUTES",
	"UNTERTITEL_CONCURRENCY",
	"UNTERTITEL_KEYWORD_PROVIDER",
	"OPENAI_API_KEY",
	"GEMINI_API_KEY",
	"ANTHROPIC_API_KEY",
}

// clearEnv unsets all config variables, with t.Setenv registering the
// restore for after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "openai" {
		t.Errorf("expected provider openai, got %q", cfg.Provider)
	}
	if cfg.Language != "de" {
		t.Errorf("expected language de, got %q", cfg.Language)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("expected output dir 'output', got %q", cfg.OutputDir)
	}
	if cfg.ChunkMinutes != 1 {
		t.Errorf("expected chunk minutes 1, got %d", cfg.ChunkMinutes)
	}
	if cfg.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", cfg.Concurrency)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("UNTERTITEL_PROVIDER", "gemini")
	t.Setenv("UNTERTITEL_LANGUAGE", "en")
	t.Setenv("UNTERTITEL_CHUNK_MINUTES", "5")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Errorf("expected provider gemini, got %q", cfg.Provider)
	}
	if cfg.Language != "en" {
		t.Errorf("expected language en, got %q", cfg.Language)
	}
	if cfg.ChunkMinutes != 5 {
		t.Errorf("expected chunk minutes 5, got %d", cfg.ChunkMinutes)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("expected gemini key, got %q", cfg.GeminiAPIKey)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "UNTERTITEL_LANGUAGE=fr\nOPENAI_API_KEY=from-dotenv\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Language != "fr" {
		t.Errorf("expected language fr from .env, got %q", cfg.Language)
	}
	if cfg.OpenAIAPIKey != "from-dotenv" {
		t.Errorf("expected key from .env, got %q", cfg.OpenAIAPIKey)
	}
}

func TestEnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile,
		[]byte("UNTERTITEL_LANGUAGE=fr\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("UNTERTITEL_LANGUAGE", "es")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Language != "es" {
		t.Errorf("expected environment to win over .env, got %q",
			cfg.Language)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty provider",
			mutate:  func(c *Config) { c.Provider = "" },
			wantErr: "provider",
		},
		{
			name:    "zero chunk minutes",
			mutate:  func(c *Config) { c.ChunkMinutes = 0 },
			wantErr: "chunk duration",
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Concurrency = -1 },
			wantErr: "concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Provider:     "openai",
				Language:     "de",
				OutputDir:    "output",
				ChunkMinutes: 1,
				Concurrency:  3,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v",
					tt.wantErr, err)
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	cfg := &Config{
		OpenAIAPIKey:    "openai-key",
		GeminiAPIKey:    "gemini-key",
		AnthropicAPIKey: "anthropic-key",
	}

	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "openai-key"},
		{"gemini", "gemini-key"},
		{"anthropic", "anthropic-key"},
		{"whisper", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cfg.APIKey(tt.provider); got != tt.want {
			t.Errorf("APIKey(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
