package driving

import (
	"context"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// RunHandler receives the outcome of each analysis run.
type RunHandler func(results *domain.AnalysisResults, err error)

// WatchService re-runs the analysis whenever a vault changes.
type WatchService interface {
	// Start analyses the vault once, then again after each settled burst of
	// changes. It blocks until ctx is cancelled or Stop is called.
	Start(ctx context.Context, req AnalysisRequest, handle RunHandler) error

	// Stop ends a running Start and waits for an in-flight run.
	Stop() error
}
