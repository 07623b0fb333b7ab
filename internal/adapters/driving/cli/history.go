package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyLimit    int
	historyJSON     bool
	historyShowJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analysis runs",
	Long:  `Lists stored analysis runs, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a stored analysis run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	historyShowCmd.Flags().BoolVar(&historyShowJSON, "json", false, "print the full results as JSON")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	runs, err := analysisService.History(commandContext(cmd), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, runs)
	}

	if len(runs) == 0 {
		cmd.Println("No stored runs.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tNOTES\tWEAK\tISOLATED\tVAULT")
	for _, r := range runs {
		partial := ""
		if r.Partial {
			partial = " (partial)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s%s\n",
			r.RunID, r.StartedAt.Local().Format(time.DateTime), r.NoteCount, r.Weak, r.Isolated, r.VaultPath, partial)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	results, err := analysisService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	if historyShowJSON {
		return printJSON(cmd, results)
	}
	printReport(cmd.OutOrStdout(), results)
	return nil
}
