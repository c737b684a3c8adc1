package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage saved topics",
	RunE:  runTopicsList,
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved topics",
	RunE:  runTopicsList,
}

var topicsAddCmd = &cobra.Command{
	Use:   "add [topic...]",
	Short: "Add topics",
	Long: `Add one or more saved topics.

Topics are matched ignoring case, so adding "ai" when "AI" is saved
changes nothing and the saved casing is kept.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTopicsAdd,
}

var topicsRemoveCmd = &cobra.Command{
	Use:     "remove [topic...]",
	Aliases: []string{"rm"},
	Short:   "Remove topics",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTopicsRemove,
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsAddCmd)
	topicsCmd.AddCommand(topicsRemoveCmd)
	rootCmd.AddCommand(topicsCmd)
}

func runTopicsList(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	topics := preferenceService.Preferences().Topics
	if len(topics) == 0 {
		cmd.Println("No saved topics. Add one with 'newsum topics add <topic>'.")
		return nil
	}
	for i, t := range topics {
		cmd.Printf("  %d. %s\n", i+1, t)
	}
	return nil
}

func runTopicsAdd(cmd *cobra.Command, args []string) error {
	return updateTopics(cmd, args, nil)
}

func runTopicsRemove(cmd *cobra.Command, args []string) error {
	return updateTopics(cmd, nil, args)
}

func updateTopics(cmd *cobra.Command, add, remove []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	if err := preferenceService.UpdateTopics(add, remove); err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			return fmt.Errorf("failed to update topics: %w", err)
		}
		cmd.PrintErrf("Warning: %v\n", err)
	}
	return runTopicsList(cmd, nil)
}
