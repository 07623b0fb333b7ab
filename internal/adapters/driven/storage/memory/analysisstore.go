package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

// Ensure AnalysisStore implements the interface.
var _ driven.AnalysisStore = (*AnalysisStore)(nil)

// AnalysisStore is an in-memory implementation of driven.AnalysisStore.
type AnalysisStore struct {
	mu   sync.RWMutex
	runs map[string]domain.AnalysisResults
}

// NewAnalysisStore creates a new in-memory analysis store.
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		runs: make(map[string]domain.AnalysisResults),
	}
}

// Save stores or replaces a run.
func (s *AnalysisStore) Save(_ context.Context, results *domain.AnalysisResults) error {
	if results == nil || results.RunID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[results.RunID] = *results
	return nil
}

// Get retrieves a run by ID.
func (s *AnalysisStore) Get(_ context.Context, runID string) (*domain.AnalysisResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

// Latest returns the most recent run for a vault.
func (s *AnalysisStore) Latest(_ context.Context, vaultPath string) (*domain.AnalysisResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.AnalysisResults
	for id := range s.runs {
		r := s.runs[id]
		if vaultPath != "" && r.VaultPath != vaultPath {
			continue
		}
		if latest == nil || newer(&r, latest) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// List returns run headers, newest first.
func (s *AnalysisStore) List(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*domain.AnalysisResults, 0, len(s.runs))
	for id := range s.runs {
		r := s.runs[id]
		runs = append(runs, &r)
	}
	sort.Slice(runs, func(i, j int) bool { return newer(runs[i], runs[j]) })

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	summaries := make([]domain.RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, domain.SummaryOf(r))
	}
	return summaries, nil
}

// Delete removes a run.
func (s *AnalysisStore) Delete(_ context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.runs, runID)
	return nil
}

// newer orders runs by start time, then by ID for equal instants.
func newer(a, b *domain.AnalysisResults) bool {
	if !a.StartedAt.Equal(b.StartedAt) {
		return a.StartedAt.After(b.StartedAt)
	}
	return a.RunID > b.RunID
}
