package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
)

var (
	watchNoStore       bool
	watchWeakThreshold int
)

var watchCmd = &cobra.Command{
	Use:   "watch [vault]",
	Short: "Re-analyse a vault whenever it changes",
	Long: `Analyses the vault, then watches it and runs the analysis again after
each burst of note changes settles. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoStore, "no-store", false, "do not store runs")
	watchCmd.Flags().IntVar(&watchWeakThreshold, "weak-threshold", 0,
		"degree below which a note is weakly connected (0 uses the setting)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := driving.AnalysisRequest{
		VaultPath:     vaultArg(args),
		WeakThreshold: watchWeakThreshold,
		SkipStore:     watchNoStore,
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	err := watchService.Start(ctx, req, func(results *domain.AnalysisResults, err error) {
		stamp := muted(time.Now().Format(time.TimeOnly))
		if err != nil {
			cmd.PrintErrf("%s %s\n", stamp, warning(fmt.Sprintf("analysis failed: %v", err)))
			return
		}
		cmd.Printf("%s %s\n", stamp, results.Summary())
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
