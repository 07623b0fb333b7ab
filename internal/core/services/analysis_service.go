package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs analyses over vaults and keeps their history.
type AnalysisService struct {
	opener    driven.VaultOpener
	settings  driving.SettingsService
	store     driven.AnalysisStore
	tokenizer driven.Tokenizer
	phrases   driven.PhraseExtractor

	now     func() time.Time
	running atomic.Bool
}

// NewAnalysisService creates a new analysis service.
// settings and store are optional: without settings the default policy
// applies and without a store runs are not persisted.
func NewAnalysisService(
	opener driven.VaultOpener,
	settings driving.SettingsService,
	store driven.AnalysisStore,
	tokenizer driven.Tokenizer,
	phrases driven.PhraseExtractor,
) *AnalysisService {
	return &AnalysisService{
		opener:    opener,
		settings:  settings,
		store:     store,
		tokenizer: tokenizer,
		phrases:   phrases,
		now:       time.Now,
	}
}

// SetClock replaces the clock used to capture each run's instant.
func (s *AnalysisService) SetClock(now func() time.Time) {
	s.now = now
}

// Run analyses a vault and returns the snapshot.
// Only one run executes at a time; a concurrent call fails with
// domain.ErrAnalysisInProgress.
func (s *AnalysisService) Run(ctx context.Context, req driving.AnalysisRequest) (*domain.AnalysisResults, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrAnalysisInProgress
	}
	defer s.running.Store(false)

	settings, err := s.loadSettings()
	if err != nil {
		return nil, err
	}

	policy := settings.Analysis
	if req.WeakThreshold > 0 {
		policy.WeakThreshold = req.WeakThreshold
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	vault, err := s.openVault(ctx, req.VaultPath, settings)
	if err != nil {
		return nil, err
	}

	now := s.now()
	results, err := NewAnalyzer(policy, s.tokenizer, s.phrases).Analyze(ctx, vault, vault, now)
	if err != nil {
		return nil, err
	}
	results.RunID = uuid.NewString()
	results.VaultPath = vault.Root()

	if s.store != nil && settings.Storage.Enabled && !req.SkipStore {
		if err := s.store.Save(ctx, results); err != nil {
			logger.Warn("Failed to store run %s: %v", results.RunID, err)
		} else {
			logger.Debug("Stored run %s", results.RunID)
		}
	}

	return results, nil
}

// NoteConnections summarises the direct connections of one note.
func (s *AnalysisService) NoteConnections(
	ctx context.Context,
	vaultPath, notePath string,
) (*domain.ConnectionSummary, error) {
	settings, err := s.loadSettings()
	if err != nil {
		return nil, err
	}
	vault, err := s.openVault(ctx, vaultPath, settings)
	if err != nil {
		return nil, err
	}

	notes, err := vault.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	target := cleanNotePath(notePath)
	for _, note := range notes {
		if note.Path != target && note.Path != target+".md" {
			continue
		}
		conns, err := ExtractConnections(ctx, []domain.Note{note}, vault)
		if err != nil {
			return nil, fmt.Errorf("extract connections: %w", err)
		}
		return Summarise(conns[0]), nil
	}

	return nil, fmt.Errorf("note %s: %w", notePath, domain.ErrNotFound)
}

// GraphData exports the link graph of a completed run.
func (s *AnalysisService) GraphData(results *domain.AnalysisResults) domain.GraphData {
	if results == nil {
		return ExportGraph(nil, domain.Graph{}, nil, nil)
	}
	return ExportGraph(results.Connections, results.Graph, results.Strength, results.Centrality)
}

// Latest returns the most recent stored run for a vault.
func (s *AnalysisService) Latest(ctx context.Context, vaultPath string) (*domain.AnalysisResults, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}
	return s.store.Latest(ctx, vaultPath)
}

// History lists stored runs, newest first.
func (s *AnalysisService) History(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}
	return s.store.List(ctx, limit)
}

// Get retrieves a stored run.
func (s *AnalysisService) Get(ctx context.Context, runID string) (*domain.AnalysisResults, error) {
	if s.store == nil {
		return nil, domain.ErrStorageUnavailable
	}
	return s.store.Get(ctx, runID)
}

func (s *AnalysisService) loadSettings() (*domain.AppSettings, error) {
	if s.settings == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *AnalysisService) openVault(
	ctx context.Context,
	vaultPath string,
	settings *domain.AppSettings,
) (driven.Vault, error) {
	if vaultPath == "" {
		vaultPath = settings.Vault.Path
	}
	if vaultPath == "" {
		return nil, domain.ErrVaultNotConfigured
	}
	if s.opener == nil {
		return nil, fmt.Errorf("open vault: vault opener not configured")
	}

	vault, err := s.opener.Open(ctx, vaultPath)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	return vault, nil
}

func cleanNotePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return strings.TrimPrefix(p, "./")
}
