package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studybuddy/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		operation, _ := cmd.Flags().GetString("operation")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().RecentGenerations(cmd.Context(), store.EventQuery{
			Operation: operation,
			Limit:     limit,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No generation requests recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-20s  %-24s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Operation", "Document", "Model", "Frags", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 110))

		for _, e := range events {
			ok := okStyle.Render("✓")
			if !e.Success {
				ok = badStyle.Render("✗")
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-20s  %-24s  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Operation,
				truncate(e.DocumentID, 20),
				truncate(e.Model, 24),
				e.Fragments,
				e.LatencyMs,
				ok,
			)
			if !e.Success && e.ErrorMessage != "" {
				fmt.Printf("       %s\n", dimStyle.Render(truncate(e.ErrorMessage, 100)))
			}
		}
		return nil
	},
}

// truncate cuts s to at most max runes, never splitting a code point.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().StringP("operation", "o", "", "Filter by operation (summary, keypoints, quiz)")
}
