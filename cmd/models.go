package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show server health and installed models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		client := newClient(cfg, logger)
		health := client.CheckHealth(cmd.Context())

		fmt.Printf("Server:  %s\n", client.BaseURL())
		if !health.Connected {
			fmt.Printf("Status:  %s\n", badStyle.Render("unreachable"))
			return nil
		}
		fmt.Printf("Status:  %s\n", okStyle.Render("connected"))

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}
		if len(models) == 0 {
			fmt.Println("\nNo models installed.")
			return nil
		}

		fmt.Println()
		fmt.Printf("%-32s  %10s  %s\n", "Name", "Size", "Modified")
		fmt.Println(strings.Repeat("─", 64))
		for _, m := range models {
			name := m.Name
			if name == cfg.Model {
				name += " *"
			}
			fmt.Printf("%-32s  %10s  %s\n",
				name, formatSize(m.Size), m.ModifiedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Println(dimStyle.Render("\n* default model"))
		return nil
	},
}

func formatSize(bytes int64) string {
	const gb = 1 << 30
	const mb = 1 << 20
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
