package driving

import (
	"context"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// AnalysisRequest describes one analysis run.
type AnalysisRequest struct {
	// VaultPath is the vault root. Empty uses the configured vault.
	VaultPath string

	// WeakThreshold overrides the configured threshold when positive.
	WeakThreshold int

	// SkipStore disables snapshot persistence for this run.
	SkipStore bool
}

// AnalysisService runs and retrieves knowledge-base analyses.
type AnalysisService interface {
	// Run analyses a vault and returns the snapshot.
	Run(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResults, error)

	// NoteConnections summarises the direct connections of one note.
	NoteConnections(ctx context.Context, vaultPath, notePath string) (*domain.ConnectionSummary, error)

	// GraphData exports the link graph of a completed run.
	GraphData(results *domain.AnalysisResults) domain.GraphData

	// Latest returns the most recent stored run for a vault.
	Latest(ctx context.Context, vaultPath string) (*domain.AnalysisResults, error)

	// History lists stored runs, newest first.
	History(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Get retrieves a stored run.
	Get(ctx context.Context, runID string) (*domain.AnalysisResults, error)
}
