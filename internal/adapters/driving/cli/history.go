package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent submissions",
	Long: `Shows the local log of requests that changed the knowledge base:
classifications, processing runs, and description and product edits.
Chat messages are not recorded.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the log")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if activityService == nil {
		return errNotConfigured("activity")
	}

	ctx := commandContext(cmd)

	if historyClear {
		if err := activityService.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("History cleared.")
		return nil
	}

	entries, err := activityService.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No activity recorded.")
		return nil
	}

	for i := range entries {
		printActivity(cmd, &entries[i])
	}
	return nil
}

func printActivity(cmd *cobra.Command, a *domain.Activity) {
	mark := successText("✓")
	if !a.IsSuccess() {
		mark = errorText("✗")
	}
	cmd.Printf("%s %s  %-18s %s\n", mark, a.At.Local().Format("2006-01-02 15:04:05"), a.Operation, a.Target)
	if a.Message != "" {
		cmd.Printf("    %s\n", dimText(a.Message))
	}
}
