package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:11434" {
		t.Errorf("wrong default base URL: %s", cfg.BaseURL)
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("wrong default model: %s", cfg.Model)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("wrong default timeout: %s", cfg.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYBUDDY_BASE_URL", "http://10.0.0.5:11434")
	t.Setenv("STUDYBUDDY_MODEL", "mistral")
	t.Setenv("STUDYBUDDY_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:11434" {
		t.Errorf("base URL not overridden: %s", cfg.BaseURL)
	}
	if cfg.Model != "mistral" {
		t.Errorf("model not overridden: %s", cfg.Model)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout not overridden: %s", cfg.Timeout)
	}
	// Untouched values keep their defaults.
	if cfg.ChunkSize != 4000 {
		t.Errorf("chunk size changed unexpectedly: %d", cfg.ChunkSize)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base URL", func(c *Config) { c.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"overlap >= chunk size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }},
		{"zero prompt budget", func(c *Config) { c.MaxPromptChars = 0 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
