package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "View and update preferences",
	RunE:  runPrefsShow,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a preference",
	Long: `Set a preference. Keys:
  summary_mode        brief or detailed
  articles_per_topic  number of articles per search (1-20)
  language            2-letter language code, e.g. en`,
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	p := preferenceService.Preferences()
	cmd.Println("Preferences")
	cmd.Println("===========")
	cmd.Printf("  Summary mode:       %s\n", p.SummaryMode.Description())
	cmd.Printf("  Articles per topic: %d\n", p.ArticlesPerTopic)
	cmd.Printf("  Language:           %s\n", p.Language)
	cmd.Printf("  Topics:             %d saved\n", len(p.Topics))
	cmd.Printf("  File:               %s\n", preferenceService.Path())
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	key, value := args[0], args[1]
	var err error
	switch key {
	case "summary_mode", "summary_type":
		var mode domain.SummaryMode
		mode, err = domain.ParseSummaryMode(value)
		if err == nil {
			err = preferenceService.SetSummaryMode(mode)
		}
	case "articles_per_topic":
		var n int
		n, err = strconv.Atoi(value)
		if err != nil {
			err = fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, value)
		} else {
			err = preferenceService.SetArticlesPerTopic(n)
		}
	case "language":
		err = preferenceService.SetLanguage(value)
	default:
		return fmt.Errorf("unknown preference %q (use summary_mode, articles_per_topic or language)", key)
	}

	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		cmd.PrintErrf("Warning: %v\n", err)
	}
	return runPrefsShow(cmd, nil)
}
