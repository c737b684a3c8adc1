package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	similarK     int
	similarFetch string
	similarJSON  bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [text]",
	Short: "Find indexed articles similar to a text",
	Long: `Runs a semantic similarity query against indexed articles.

The index only lives for one run unless index.persist is enabled.
Use --fetch to search for a query first and then query its results.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarK, "k", "k", 5, "maximum number of articles")
	similarCmd.Flags().StringVar(&similarFetch, "fetch", "", "search for this query before querying the index")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if similarFetch != "" {
		if sessionService == nil {
			return errors.New("session service not configured")
		}
		outcome, err := sessionService.Search(cmd.Context(), similarFetch)
		if err != nil {
			return hint(fmt.Errorf("search failed: %w", err))
		}
		reportOutcome(cmd, outcome)
	}

	hits, err := indexService.QuerySimilar(cmd.Context(), strings.Join(args, " "), similarK)
	if err != nil {
		return hint(fmt.Errorf("similarity query failed: %w", err))
	}

	if similarJSON {
		type hitJSON struct {
			articleJSON
			Similarity float64 `json:"similarity"`
		}
		out := make([]hitJSON, len(hits))
		for i, h := range hits {
			out[i] = hitJSON{articleJSON: toArticleJSON(h.Article), Similarity: h.Similarity}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(hits) == 0 {
		cmd.Println("No similar articles found.")
		return nil
	}
	for i, h := range hits {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, h.Article.Title, h.Similarity)
		cmd.Printf("      %s\n", articleMeta(h.Article))
		cmd.Printf("      id: %s\n", h.Article.ID)
	}
	return nil
}
