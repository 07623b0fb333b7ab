package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
)

// dashboardConcepts is the number of concepts shown in the report.
const dashboardConcepts = 10

var (
	analyseJSON          bool
	analyseNoStore       bool
	analyseWeakThreshold int
)

var analyseCmd = &cobra.Command{
	Use:     "analyse [vault]",
	Aliases: []string{"analyze"},
	Short:   "Analyse a vault",
	Long: `Scans the vault, builds the link graph and scores every note.

Prints a report of weak and isolated notes, the best connected notes and the
most frequent concepts. Without a vault argument the configured vault.path
is used. Completed runs are stored unless --no-store is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyse,
}

func init() {
	analyseCmd.Flags().BoolVar(&analyseJSON, "json", false, "print the full results as JSON")
	analyseCmd.Flags().BoolVar(&analyseNoStore, "no-store", false, "do not store the run")
	analyseCmd.Flags().IntVar(&analyseWeakThreshold, "weak-threshold", 0,
		"degree below which a note is weakly connected (0 uses the setting)")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if analyseWeakThreshold < 0 {
		return fmt.Errorf("%w: --weak-threshold must not be negative", domain.ErrInvalidInput)
	}

	req := driving.AnalysisRequest{
		VaultPath:     vaultArg(args),
		WeakThreshold: analyseWeakThreshold,
		SkipStore:     analyseNoStore,
	}

	results, err := analysisService.Run(commandContext(cmd), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyseJSON {
		return printJSON(cmd, results)
	}
	printReport(cmd.OutOrStdout(), results)
	return nil
}

// printReport writes the human-readable dashboard of a run.
func printReport(w io.Writer, r *domain.AnalysisResults) {
	fmt.Fprintln(w, r.Summary())
	if r.VaultPath != "" {
		fmt.Fprintln(w, muted(fmt.Sprintf("Vault: %s  Run: %s  (%s)", r.VaultPath, r.RunID, r.Duration.Round(time.Millisecond))))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Overview"))
	fmt.Fprintf(w, "  Total notes:      %d\n", r.NoteCount())
	fmt.Fprintf(w, "  Weak connections: %d\n", len(r.WeakConnections))
	fmt.Fprintf(w, "  Isolated notes:   %d\n", len(r.IsolatedNotes))

	printRanking(w, "Strongest notes", r.TopStrength, "%.2f")
	printRanking(w, "Most central notes", r.TopCentrality, "%.0f")

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Top concepts"))
	if len(r.Concepts) == 0 {
		fmt.Fprintln(w, muted("  (none)"))
	}
	for i, c := range r.Concepts {
		if i == dashboardConcepts {
			break
		}
		fmt.Fprintf(w, "  %-20s %d\n", c.Term, c.Frequency)
	}

	if len(r.IsolatedNotes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading("Isolated notes"))
		for _, p := range r.IsolatedNotes {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}

	if r.Partial {
		fmt.Fprintln(w)
		fmt.Fprintln(w, warning(fmt.Sprintf("Content analysis skipped for %d notes:", len(r.Failures))))
		for _, f := range r.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.Path, f.Reason)
		}
	}
}

func printRanking(w io.Writer, title string, ranked []domain.RankedNote, scoreFormat string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(title))
	if len(ranked) == 0 {
		fmt.Fprintln(w, muted("  (none)"))
		return
	}
	for i, n := range ranked {
		fmt.Fprintf(w, "  %d. %s  "+scoreFormat+"\n", i+1, n.Path, n.Score)
	}
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// loadResults returns a stored run when runID is set, otherwise a fresh
// unstored analysis of vault.
func loadResults(cmd *cobra.Command, runID, vault string) (*domain.AnalysisResults, error) {
	ctx := commandContext(cmd)
	if runID != "" {
		return analysisService.Get(ctx, runID)
	}
	return analysisService.Run(ctx, driving.AnalysisRequest{VaultPath: vault, SkipStore: true})
}

// vaultArg returns the optional vault argument.
func vaultArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

// commandContext returns the command context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
