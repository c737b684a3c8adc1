// Package cli provides the cobra command tree for newsum.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsum/internal/core/ports/driving"
	"github.com/custodia-labs/newsum/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
)

// Services holds the driving ports the commands call.
type Services struct {
	News        driving.NewsService
	Index       driving.IndexService
	Summary     driving.SummaryService
	Preferences driving.PreferenceService
	Session     driving.SessionService
	Settings    driving.SettingsService
}

// Options carries global flag values to the bootstrap func.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Bootstrap builds services once global flags are parsed.
// The returned func releases resources and may be nil.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	newsService       driving.NewsService
	indexService      driving.IndexService
	summaryService    driving.SummaryService
	preferenceService driving.PreferenceService
	sessionService    driving.SessionService
	settingsService   driving.SettingsService

	bootstrap Bootstrap
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "newsum",
	Short: "Search, index and summarise news from the terminal",
	Long: `newsum fetches news articles for a query, indexes them for semantic
search and summarises them with an LLM.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default $XDG_CONFIG_HOME/newsum)")
}

// SetServices sets the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	newsService = s.News
	indexService = s.Index
	summaryService = s.Summary
	preferenceService = s.Preferences
	sessionService = s.Session
	settingsService = s.Settings
}

// SetBootstrap registers the func that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}
	services, closer, err := bootstrap(cmd.Context(), Options{
		ConfigDir: flagConfigDir,
		Verbose:   flagVerbose,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = closer
	return nil
}

func teardown() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}
