package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.VaultWatcher = (*Watcher)(nil)

// Watcher reports note changes using fsnotify.
type Watcher struct{}

// NewWatcher creates a filesystem watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch streams note changes under root until ctx is cancelled.
// New directories are watched as they appear.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan domain.VaultChange, <-chan error, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve vault path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, nil, fmt.Errorf("stat vault: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(fsw, abs); err != nil {
		_ = fsw.Close()
		return nil, nil, err
	}

	changes := make(chan domain.VaultChange)
	errs := make(chan error)

	go func() {
		defer close(changes)
		defer close(errs)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				change := handleFsEvent(fsw, abs, event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes, errs, nil
}

// addTree watches dir and every visible subdirectory.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != dir {
			if _, skip := skipDirs[d.Name()]; skip || isHidden(d.Name()) {
				return filepath.SkipDir
			}
		}
		if err := fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// handleFsEvent converts an fsnotify event into a note change.
// Directory creations extend the watch and produce no change.
func handleFsEvent(fsw *fsnotify.Watcher, root string, event fsnotify.Event) *domain.VaultChange {
	rel, err := filepath.Rel(root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if isHidden(rel) {
		return nil
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if fsw != nil {
				if err := addTree(fsw, event.Name); err != nil {
					logger.Warn("%v", err)
				}
			}
			return nil
		}
	}

	if !strings.EqualFold(path.Ext(rel), noteExtension) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Create):
		return &domain.VaultChange{Path: rel, Kind: domain.ChangeCreated}
	case event.Has(fsnotify.Write):
		return &domain.VaultChange{Path: rel, Kind: domain.ChangeModified}
	case event.Has(fsnotify.Remove):
		return &domain.VaultChange{Path: rel, Kind: domain.ChangeRemoved}
	case event.Has(fsnotify.Rename):
		return &domain.VaultChange{Path: rel, Kind: domain.ChangeRenamed}
	default:
		return nil
	}
}
