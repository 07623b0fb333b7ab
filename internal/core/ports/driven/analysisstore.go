package driven

import (
	"context"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// AnalysisStore persists completed analysis snapshots.
// Snapshots are stored whole and never merged.
type AnalysisStore interface {
	// Save stores a completed run.
	Save(ctx context.Context, results *domain.AnalysisResults) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, runID string) (*domain.AnalysisResults, error)

	// Latest returns the most recent run for a vault.
	// An empty vault path matches any vault.
	Latest(ctx context.Context, vaultPath string) (*domain.AnalysisResults, error)

	// List returns run headers, newest first. A limit of 0 returns all.
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Delete removes a run.
	Delete(ctx context.Context, runID string) error
}
