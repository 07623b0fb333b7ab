// Package filesystem reads a Markdown vault from disk.
// It implements the document source and link index the analysis needs and
// watches the vault for changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/logger"
	"github.com/custodia-labs/notegraph/internal/normalisers/markdown"
)

// Ensure Vault and Opener implement the interfaces.
var (
	_ driven.Vault       = (*Vault)(nil)
	_ driven.VaultOpener = (*Opener)(nil)
)

// noteExtension is the extension of files treated as notes.
const noteExtension = ".md"

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".obsidian":    {},
	".trash":       {},
}

// Opener opens vaults from the local filesystem.
type Opener struct{}

// NewOpener creates a filesystem vault opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open scans the vault at root.
func (o *Opener) Open(ctx context.Context, root string) (driven.Vault, error) {
	return Open(ctx, root)
}

// Vault is a scanned snapshot of a directory of Markdown notes.
// Note identifiers are slash-separated paths relative to the root.
type Vault struct {
	root  string
	notes []domain.Note

	mu       sync.RWMutex
	links    map[string][]string
	resolved domain.ResolvedLinkTable
}

// Open walks root, indexes every note and resolves their links.
// Hidden directories and files matched by the root .gitignore are skipped.
func Open(ctx context.Context, root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, abs)
	}

	v := &Vault{root: abs}
	bodies, err := v.scan(ctx)
	if err != nil {
		return nil, err
	}
	v.index(bodies)

	logger.Debug("Scanned vault %s: %d notes", abs, len(v.notes))
	return v, nil
}

// Root returns the absolute vault path.
func (v *Vault) Root() string {
	return v.root
}

// scan collects notes and their bodies. Notes that cannot be read are still
// listed, without links.
func (v *Vault) scan(ctx context.Context) (map[string][]byte, error) {
	gi := loadGitignore(v.root)
	bodies := make(map[string][]byte)

	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("Skipping %s: %v", p, err)
			if d != nil && d.IsDir() && p != v.root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(v.root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if p == v.root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || isHidden(name) || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(name) || !strings.EqualFold(path.Ext(name), noteExtension) {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		note := domain.Note{Path: rel, Title: strings.TrimSuffix(name, path.Ext(name))}
		if info, err := d.Info(); err == nil {
			note.Size = info.Size()
			note.LastModified = info.ModTime()
		}

		content, err := os.ReadFile(p)
		if err != nil {
			logger.Warn("Reading %s: %v", rel, err)
		} else {
			doc, err := markdown.Normalise(rel, content)
			if err != nil {
				logger.Warn("%v", err)
			}
			note.Title = doc.Title
			note.Aliases = doc.Aliases
			note.Tags = doc.Tags
			bodies[rel] = []byte(doc.Body)
		}

		v.notes = append(v.notes, note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	sort.Slice(v.notes, func(i, j int) bool { return v.notes[i].Path < v.notes[j].Path })
	return bodies, nil
}

// index extracts and resolves every note's links.
func (v *Vault) index(bodies map[string][]byte) {
	resolver := NewResolver(v.notes)
	links := make(map[string][]string, len(v.notes))
	resolved := make(domain.ResolvedLinkTable)

	for _, n := range v.notes {
		raw := ExtractLinks(bodies[n.Path])
		targets := make([]string, 0, len(raw))
		for _, l := range raw {
			id, ok := resolver.Resolve(n.Path, l)
			targets = append(targets, id)
			if !ok {
				continue
			}
			if resolved[n.Path] == nil {
				resolved[n.Path] = make(map[string]int)
			}
			resolved[n.Path][id]++
		}
		links[n.Path] = targets
	}

	v.mu.Lock()
	v.links = links
	v.resolved = resolved
	v.mu.Unlock()
}

// ListDocuments returns the notes sorted by path.
func (v *Vault) ListDocuments(ctx context.Context) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Note(nil), v.notes...), nil
}

// ReadText reads a note from disk and returns its body without front matter.
func (v *Vault) ReadText(ctx context.Context, note domain.Note) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := v.resolvePath(note.Path)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", note.Path, domain.ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", note.Path, err)
	}
	doc, _ := markdown.Normalise(note.Path, content)
	return doc.Body, nil
}

// OutgoingLinks returns the note's link targets in document order.
func (v *Vault) OutgoingLinks(ctx context.Context, note domain.Note) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]string(nil), v.links[note.Path]...), nil
}

// ResolvedLinks returns a copy of the source -> target table.
func (v *Vault) ResolvedLinks(ctx context.Context) (domain.ResolvedLinkTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()

	table := make(domain.ResolvedLinkTable, len(v.resolved))
	for source, targets := range v.resolved {
		copied := make(map[string]int, len(targets))
		for t, n := range targets {
			copied[t] = n
		}
		table[source] = copied
	}
	return table, nil
}

// resolvePath maps an identifier to a file under the root.
func (v *Vault) resolvePath(id string) (string, error) {
	clean := path.Clean("/" + id)
	if clean == "/" {
		return "", fmt.Errorf("%w: empty note path", domain.ErrInvalidInput)
	}
	return filepath.Join(v.root, filepath.FromSlash(clean[1:])), nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// isHidden reports whether a path has a dot-prefixed element.
// "." and ".." are not hidden.
func isHidden(p string) bool {
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
