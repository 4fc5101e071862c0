// Package cli implements the vilabot command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/vilabot/vilabot/internal/core/ports/driving"
	"github.com/vilabot/vilabot/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verboseFlag bool

// Core services wired in by main before Execute.
var (
	queryService    driving.QueryService
	sourceRegistry  driving.SourceRegistry
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "vilabot",
	Short: "Ask about events in Catalonia",
	Long: `Vilabot answers natural-language questions about events in Catalonia.

A question is interpreted by an LLM, the catalogued event sources are
consulted concurrently, and the merged results are synthesised into a
short answer in the language of the question.

Run 'vilabot query "..."' for a one-shot answer, or 'vilabot tui' for
the interactive interface.`,
	// main reports the error once; keep cobra from printing it too
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print pipeline progress to stderr")
}

// Services bundles the core services the CLI commands depend on.
type Services struct {
	Query    driving.QueryService
	Sources  driving.SourceRegistry
	Settings driving.SettingsService
}

// SetServices wires the core services into the CLI commands.
func SetServices(services Services) {
	queryService = services.Query
	sourceRegistry = services.Sources
	settingsService = services.Settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
