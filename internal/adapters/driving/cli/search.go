package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

var (
	searchJSON      bool
	searchSummarize string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for news articles",
	Long: `Fetches articles matching the query, records the search in history and
indexes the results for 'newsum similar'.

The number of articles comes from the articles_per_topic preference.
Use --summarize brief|detailed to summarise the results afterwards.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchSummarize, "summarize", "s", "", "summarise results (brief or detailed)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	var mode domain.SummaryMode
	if searchSummarize != "" {
		m, err := domain.ParseSummaryMode(searchSummarize)
		if err != nil {
			return fmt.Errorf("invalid --summarize value %q: use brief or detailed", searchSummarize)
		}
		mode = m
	}

	query := strings.Join(args, " ")
	outcome, err := sessionService.Search(cmd.Context(), query)
	if err != nil {
		return hint(fmt.Errorf("search failed: %w", err))
	}
	reportOutcome(cmd, outcome)

	if searchJSON {
		if err := outputArticlesJSON(cmd, outcome.Articles); err != nil {
			return err
		}
	} else {
		outputArticles(cmd, outcome.Articles)
	}

	if mode == "" || len(outcome.Articles) == 0 {
		return nil
	}
	if summaryService == nil {
		return errors.New("summary service not configured")
	}
	summary, err := summaryService.Summarize(cmd.Context(), outcome.Articles, mode)
	if err != nil {
		return hint(fmt.Errorf("summarize failed: %w", err))
	}
	cmd.Printf("Summary (%s):\n%s\n", mode, summary)
	return nil
}

// reportOutcome prints the non-fatal failures of a search to stderr.
func reportOutcome(cmd *cobra.Command, outcome *domain.SearchOutcome) {
	if outcome.HistoryErr != nil {
		cmd.PrintErrf("Warning: search history not saved: %v\n", outcome.HistoryErr)
	}
	if outcome.IndexErr != nil {
		cmd.PrintErrf("Warning: articles not indexed, similarity search unavailable: %v\n", outcome.IndexErr)
	}
}

type articleJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
}

func toArticleJSON(a domain.Article) articleJSON {
	out := articleJSON{
		ID:          a.ID,
		Title:       a.Title,
		Source:      a.Source,
		Author:      a.Author,
		Description: a.Description,
		URL:         a.URL,
	}
	if !a.PublishedAt.IsZero() {
		out.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}
	return out
}

func outputArticlesJSON(cmd *cobra.Command, articles []domain.Article) error {
	out := make([]articleJSON, len(articles))
	for i, a := range articles {
		out[i] = toArticleJSON(a)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputArticles(cmd *cobra.Command, articles []domain.Article) {
	if len(articles) == 0 {
		cmd.Println("No articles found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, a := range articles {
		cmd.Printf("  [%d] %s\n", i+1, a.Title)
		cmd.Printf("      %s\n", articleMeta(a))
		if a.Description != "" {
			cmd.Printf("      %s\n", truncate(a.Description, 200))
		}
		if a.URL != "" {
			cmd.Printf("      %s\n", a.URL)
		}
		cmd.Printf("      id: %s\n", a.ID)
		cmd.Println()
	}
}

func articleMeta(a domain.Article) string {
	meta := a.Source
	if !a.PublishedAt.IsZero() {
		meta += " | " + a.PublishedAt.Format("2006-01-02 15:04")
	}
	return meta
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
