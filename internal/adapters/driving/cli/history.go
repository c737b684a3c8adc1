package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", domain.DefaultHistoryLimit, "number of entries to show (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	entries := preferenceService.History(historyLimit)
	if len(entries) == 0 {
		cmd.Println("No search history.")
		return nil
	}
	for _, e := range entries {
		cmd.Println(e.String())
	}
	return nil
}
