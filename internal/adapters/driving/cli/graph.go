package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var graphRunID string

var graphCmd = &cobra.Command{
	Use:   "graph [vault]",
	Short: "Export the link graph as JSON",
	Long: `Prints the link graph in a force-graph friendly JSON shape:
nodes carry their component group, strength and connection count, links
carry how often the source links the target.

With --run the graph of a stored run is exported instead of analysing the
vault again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphRunID, "run", "", "export a stored run by ID")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	results, err := loadResults(cmd, graphRunID, vaultArg(args))
	if err != nil {
		return fmt.Errorf("graph export failed: %w", err)
	}

	return printJSON(cmd, analysisService.GraphData(results))
}
