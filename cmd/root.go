package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studybuddy/internal/config"
	"studybuddy/internal/logging"
	"studybuddy/internal/ollama"
	"studybuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "Generate summaries, key points, and quizzes from documents",
	Long:  "StudyBuddy turns documents into study material (summaries, key points, and quizzes) using a locally running model.",

	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYBUDDY_DB_PATH)")
	rootCmd.PersistentFlags().String("base-url", "", "Inference server address (overrides STUDYBUDDY_BASE_URL)")
	rootCmd.PersistentFlags().String("model", "", "Model name (overrides STUDYBUDDY_MODEL)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}

func newClient(cfg config.Config, logger *zap.Logger) *ollama.Client {
	return ollama.New(cfg.BaseURL,
		ollama.WithTimeout(cfg.Timeout),
		ollama.WithLogger(logger))
}

func openStore(cfg config.Config) (*store.Store, error) {
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
