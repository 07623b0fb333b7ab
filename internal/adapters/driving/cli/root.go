// Package cli provides the cobra command tree of the notegraph binary.
// Services are injected by main through SetServices before Execute.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// version is set at build time with -ldflags "-X".
var version = "dev"

var verbose bool

// Services injected by main.
var (
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

// Services groups the driving ports the commands use.
type Services struct {
	Analysis driving.AnalysisService
	Settings driving.SettingsService
	Watch    driving.WatchService
}

var rootCmd = &cobra.Command{
	Use:   "notegraph",
	Short: "Analyse the link structure and content of a Markdown vault",
	Long: `notegraph scans a directory of Markdown notes, builds the graph of
wiki and Markdown links between them, and scores every note by how well it
is connected and how much substance it carries.

Run "notegraph analyse" in a vault, or configure a default vault with
"notegraph settings set vault.path <dir>".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	analysisService = s.Analysis
	settingsService = s.Settings
	watchService = s.Watch
}

// SetVersion sets the version reported by "notegraph version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
