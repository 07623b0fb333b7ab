package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	noteVault string
	noteJSON  bool
)

var noteCmd = &cobra.Command{
	Use:   "note <path>",
	Short: "Show the connections of one note",
	Long: `Counts the outgoing links and backlinks of a single note.

The path is relative to the vault root; the .md extension may be omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runNote,
}

func init() {
	noteCmd.Flags().StringVar(&noteVault, "vault", "", "vault directory (defaults to vault.path)")
	noteCmd.Flags().BoolVar(&noteJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(noteCmd)
}

func runNote(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	summary, err := analysisService.NoteConnections(commandContext(cmd), noteVault, args[0])
	if err != nil {
		return fmt.Errorf("note analysis failed: %w", err)
	}

	if noteJSON {
		return printJSON(cmd, summary)
	}

	cmd.Println(summary.Message())
	cmd.Println()
	cmd.Println(heading("Links"))
	printPaths(cmd, summary.Links)
	cmd.Println()
	cmd.Println(heading("Backlinks"))
	printPaths(cmd, summary.Backlinks)
	return nil
}

func printPaths(cmd *cobra.Command, paths []string) {
	if len(paths) == 0 {
		cmd.Println(muted("  (none)"))
		return
	}
	for _, p := range paths {
		cmd.Printf("  %s\n", p)
	}
}
