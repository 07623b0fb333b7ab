package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the vault location, scoring policy and storage options.

Settings are stored in ~/.notegraph/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Lists such as analysis.stop_words are comma separated.
Run "notegraph settings keys" for the list of keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	vault := settings.Vault.Path
	if vault == "" {
		vault = "(not set)"
	}
	p := settings.Analysis

	cmd.Println(heading("Vault"))
	cmd.Printf("  Path: %s\n", vault)
	cmd.Println()

	cmd.Println(heading("Analysis"))
	cmd.Printf("  Weak threshold:      %d\n", p.WeakThreshold)
	cmd.Printf("  Top concepts:        %d\n", p.TopConcepts)
	cmd.Printf("  Top rankings:        %d\n", p.TopRankings)
	cmd.Printf("  Key phrases:         %d\n", p.KeyPhrases)
	cmd.Printf("  Link weight:         %g\n", p.LinkWeight)
	cmd.Printf("  Backlink weight:     %g\n", p.BacklinkWeight)
	cmd.Printf("  Indirect weight:     %g\n", p.IndirectWeight)
	cmd.Printf("  Recency window days: %g\n", p.RecencyWindowDays)
	cmd.Printf("  Recency scale:       %g\n", p.RecencyScale)
	if p.Workers == 0 {
		cmd.Println("  Workers:             auto")
	} else {
		cmd.Printf("  Workers:             %d\n", p.Workers)
	}
	cmd.Printf("  Concept min runes:   %d\n", p.ConceptMinRunes)
	cmd.Printf("  Concept stop words:  %t\n", p.ConceptStopWords)
	if len(p.StopWords) > 0 {
		cmd.Printf("  Extra stop words:    %s\n", strings.Join(p.StopWords, ", "))
	}
	cmd.Println()

	cmd.Println(heading("Storage"))
	cmd.Printf("  Store runs: %t\n", settings.Storage.Enabled)

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Println(warning(fmt.Sprintf("Invalid settings: %v", err)))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}
