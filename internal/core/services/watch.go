package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// Ensure Reanalyser implements the interface.
var _ driving.WatchService = (*Reanalyser)(nil)

// DefaultDebounce is how long a vault must stay quiet before a re-run.
const DefaultDebounce = 500 * time.Millisecond

// Reanalyser re-runs the analysis when a vault changes.
// Bursts of changes (an editor saving several files) trigger one run.
type Reanalyser struct {
	analysis driving.AnalysisService
	watcher  driven.VaultWatcher
	settings driving.SettingsService
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewReanalyser creates a reanalyser. A non-positive debounce uses
// DefaultDebounce. settings resolves the vault when a request names none.
func NewReanalyser(
	analysis driving.AnalysisService,
	watcher driven.VaultWatcher,
	settings driving.SettingsService,
	debounce time.Duration,
) *Reanalyser {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Reanalyser{
		analysis: analysis,
		watcher:  watcher,
		settings: settings,
		debounce: debounce,
	}
}

// Start analyses the vault once and then after every settled change burst.
// It blocks until ctx is cancelled or Stop is called.
func (r *Reanalyser) Start(ctx context.Context, req driving.AnalysisRequest, handle driving.RunHandler) error {
	if r.analysis == nil || r.watcher == nil {
		return errors.New("watch: analysis service or watcher not configured")
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return domain.ErrAnalysisInProgress
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	stopCh, doneCh := r.stopCh, r.doneCh
	r.mu.Unlock()
	defer close(doneCh)
	defer r.markStopped()

	root, err := r.resolveRoot(req.VaultPath)
	if err != nil {
		return err
	}
	req.VaultPath = root

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, errs, err := r.watcher.Watch(ctx, root)
	if err != nil {
		return err
	}

	r.runOnce(ctx, req, handle)
	return r.loop(ctx, stopCh, changes, errs, req, handle)
}

// Stop gracefully shuts down a running Start and waits for it to return,
// including any analysis run in flight.
func (r *Reanalyser) Stop() error {
	r.mu.Lock()
	if !r.running || r.stopCh == nil {
		r.mu.Unlock()
		return nil
	}
	close(r.stopCh)
	r.stopCh = nil
	doneCh := r.doneCh
	r.mu.Unlock()

	<-doneCh
	return nil
}

// loop collects changes and triggers a run once the debounce elapses.
func (r *Reanalyser) loop(
	ctx context.Context,
	stopCh <-chan struct{},
	changes <-chan domain.VaultChange,
	errs <-chan error,
	req driving.AnalysisRequest,
	handle driving.RunHandler,
) error {
	// Unarmed until the first change arrives.
	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Vault change: %s %s", change.Kind, change.Path)
			pending++
			timer.Reset(r.debounce)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("Watcher error: %v", err)
		case <-timer.C:
			logger.Info("Re-analysing after %d changes", pending)
			pending = 0
			r.runOnce(ctx, req, handle)
		}
	}
}

func (r *Reanalyser) runOnce(ctx context.Context, req driving.AnalysisRequest, handle driving.RunHandler) {
	results, err := r.analysis.Run(ctx, req)
	if handle != nil {
		handle(results, err)
	}
}

func (r *Reanalyser) resolveRoot(root string) (string, error) {
	if root != "" {
		return root, nil
	}
	if r.settings != nil {
		settings, err := r.settings.Get()
		if err != nil {
			return "", err
		}
		root = settings.Vault.Path
	}
	if root == "" {
		return "", domain.ErrVaultNotConfigured
	}
	return root, nil
}

func (r *Reanalyser) markStopped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	r.stopCh = nil
}
