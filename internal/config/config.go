// Package config loads runtime settings from STUDYBUDDY_* environment
// variables over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STUDYBUDDY_"

// Config holds all runtime settings for the pipeline.
type Config struct {
	// BaseURL is the inference server address.
	BaseURL string `koanf:"base_url"`

	// Model is the default model name passed to the server.
	Model string `koanf:"model"`

	// Timeout is the wall-clock deadline for one generation request.
	Timeout time.Duration `koanf:"timeout"`

	// ChunkSize is the window size, in runes, for splitting long
	// documents. Documents at or under this size are sent whole.
	ChunkSize int `koanf:"chunk_size"`

	// ChunkOverlap is the shared-rune count between adjacent windows.
	ChunkOverlap int `koanf:"chunk_overlap"`

	// MaxPromptChars caps the finished prompt length in runes.
	MaxPromptChars int `koanf:"max_prompt_chars"`

	// DBPath is the SQLite database location.
	DBPath string `koanf:"db_path"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:11434",
		Model:          "llama3.2",
		Timeout:        120 * time.Second,
		ChunkSize:      4000,
		ChunkOverlap:   200,
		MaxPromptChars: 12000,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load builds a Config from the environment, falling back to defaults
// for unset values. STUDYBUDDY_BASE_URL maps to base_url and so on.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d", c.ChunkOverlap)
	}
	if c.MaxPromptChars <= 0 {
		return fmt.Errorf("max_prompt_chars must be positive, got %d", c.MaxPromptChars)
	}
	return nil
}

// ResolveDBPath returns the configured database path, or the default
// XDG data location when unset. The parent directory is created.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, ensureDir(c.DBPath)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "studybuddy", "studybuddy.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
