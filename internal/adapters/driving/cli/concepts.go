package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	conceptsRunID string
	conceptsJSON  bool
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts [vault]",
	Short: "List the vault's key concepts and related terms",
	Long: `Prints the most frequent terms of the vault with their occurrence
counts and the concepts that share a sentence with each of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConcepts,
}

// conceptReport is the JSON shape of the concepts command.
type conceptReport struct {
	Term      string   `json:"term"`
	Frequency int      `json:"frequency"`
	Related   []string `json:"related"`
}

func init() {
	conceptsCmd.Flags().StringVar(&conceptsRunID, "run", "", "read a stored run by ID")
	conceptsCmd.Flags().BoolVar(&conceptsJSON, "json", false, "output concepts as JSON")
	rootCmd.AddCommand(conceptsCmd)
}

func runConcepts(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	results, err := loadResults(cmd, conceptsRunID, vaultArg(args))
	if err != nil {
		return fmt.Errorf("concept extraction failed: %w", err)
	}

	report := make([]conceptReport, 0, len(results.Concepts))
	for _, c := range results.Concepts {
		related := results.Relations[c.Term]
		if related == nil {
			related = []string{}
		}
		report = append(report, conceptReport{Term: c.Term, Frequency: c.Frequency, Related: related})
	}

	if conceptsJSON {
		return printJSON(cmd, report)
	}

	if len(report) == 0 {
		cmd.Println("No concepts found.")
		return nil
	}

	cmd.Println(heading("Concepts"))
	for _, c := range report {
		line := fmt.Sprintf("  %-20s %4d", c.Term, c.Frequency)
		if len(c.Related) > 0 {
			line += "  " + muted(strings.Join(c.Related, ", "))
		}
		cmd.Println(line)
	}
	return nil
}
