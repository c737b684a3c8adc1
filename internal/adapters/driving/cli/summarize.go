package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

var (
	summarizeMode  string
	summarizeQuery string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [article-id...]",
	Short: "Summarise articles",
	Long: `Summarises indexed articles by ID, or the results of a fresh search
with --query.

Brief mode gives 1-2 sentences; detailed mode gives one paragraph.
The default mode is the summary_mode preference.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeMode, "mode", "m", "", "summary mode (brief or detailed)")
	summarizeCmd.Flags().StringVarP(&summarizeQuery, "query", "q", "", "search for this query and summarise the results")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}
	if len(args) == 0 && summarizeQuery == "" {
		return errors.New("pass article IDs or --query")
	}

	mode, err := resolveMode(summarizeMode)
	if err != nil {
		return err
	}

	var summary string
	if summarizeQuery != "" {
		if sessionService == nil {
			return errors.New("session service not configured")
		}
		outcome, err := sessionService.Search(cmd.Context(), summarizeQuery)
		if err != nil {
			return hint(fmt.Errorf("search failed: %w", err))
		}
		reportOutcome(cmd, outcome)
		if len(outcome.Articles) == 0 {
			cmd.Println("No articles found.")
			return nil
		}
		cmd.Printf("Summarising %d articles for %q...\n\n", len(outcome.Articles), summarizeQuery)
		summary, err = summaryService.Summarize(cmd.Context(), outcome.Articles, mode)
		if err != nil {
			return hint(fmt.Errorf("summarize failed: %w", err))
		}
	} else {
		summary, err = summaryService.SummarizeByID(cmd.Context(), domain.SummaryRequest{
			ArticleIDs: args,
			Mode:       mode,
		})
		if err != nil {
			return hint(fmt.Errorf("summarize failed: %w", err))
		}
	}

	cmd.Printf("Summary (%s):\n%s\n", mode, summary)
	return nil
}

// resolveMode parses a mode flag, falling back to the preferred mode.
func resolveMode(flag string) (domain.SummaryMode, error) {
	if flag != "" {
		mode, err := domain.ParseSummaryMode(flag)
		if err != nil {
			return "", fmt.Errorf("invalid mode %q: use brief or detailed", flag)
		}
		return mode, nil
	}
	if preferenceService != nil {
		return preferenceService.Preferences().SummaryMode, nil
	}
	return domain.SummaryBrief, nil
}
