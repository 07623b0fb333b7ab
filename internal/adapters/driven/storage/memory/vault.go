package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

// Ensure Vault and VaultOpener implement the interfaces.
var (
	_ driven.Vault       = (*Vault)(nil)
	_ driven.VaultOpener = (*VaultOpener)(nil)
)

// Vault is an in-memory vault for testing.
// Links are given already resolved to note identifiers.
type Vault struct {
	mu       sync.RWMutex
	root     string
	notes    map[string]domain.Note
	texts    map[string]string
	links    map[string][]string
	readErrs map[string]error
	linkErr  error
}

// NewVault creates an empty in-memory vault.
func NewVault(root string) *Vault {
	return &Vault{
		root:     root,
		notes:    make(map[string]domain.Note),
		texts:    make(map[string]string),
		links:    make(map[string][]string),
		readErrs: make(map[string]error),
	}
}

// AddNote adds or replaces a note with its text and outgoing links.
func (v *Vault) AddNote(note domain.Note, text string, links ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notes[note.Path] = note
	v.texts[note.Path] = text
	v.links[note.Path] = append([]string(nil), links...)
}

// FailRead makes ReadText fail for path.
func (v *Vault) FailRead(path string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.readErrs[path] = err
}

// FailLinks makes every link lookup fail.
func (v *Vault) FailLinks(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.linkErr = err
}

// Root returns the vault location.
func (v *Vault) Root() string {
	return v.root
}

// ListDocuments returns the notes sorted by path.
func (v *Vault) ListDocuments(ctx context.Context) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()

	notes := make([]domain.Note, 0, len(v.notes))
	for _, n := range v.notes {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
	return notes, nil
}

// ReadText returns the text of a note.
func (v *Vault) ReadText(ctx context.Context, note domain.Note) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()

	if err, ok := v.readErrs[note.Path]; ok {
		return "", err
	}
	text, ok := v.texts[note.Path]
	if !ok {
		return "", fmt.Errorf("%s: %w", note.Path, domain.ErrNotFound)
	}
	return text, nil
}

// OutgoingLinks returns the note's links in declaration order.
func (v *Vault) OutgoingLinks(_ context.Context, note domain.Note) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.linkErr != nil {
		return nil, v.linkErr
	}
	return append([]string(nil), v.links[note.Path]...), nil
}

// ResolvedLinks counts, per source, the links whose target is a note of
// the vault.
func (v *Vault) ResolvedLinks(_ context.Context) (domain.ResolvedLinkTable, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.linkErr != nil {
		return nil, v.linkErr
	}

	table := make(domain.ResolvedLinkTable)
	for source, targets := range v.links {
		for _, target := range targets {
			if _, ok := v.notes[target]; !ok {
				continue
			}
			if table[source] == nil {
				table[source] = make(map[string]int)
			}
			table[source][target]++
		}
	}
	return table, nil
}

// VaultOpener hands out registered in-memory vaults by root.
type VaultOpener struct {
	mu     sync.RWMutex
	vaults map[string]*Vault
}

// NewVaultOpener creates an opener serving the given vaults.
func NewVaultOpener(vaults ...*Vault) *VaultOpener {
	o := &VaultOpener{vaults: make(map[string]*Vault)}
	for _, v := range vaults {
		o.vaults[v.Root()] = v
	}
	return o
}

// Open returns the vault registered at root.
func (o *VaultOpener) Open(ctx context.Context, root string) (driven.Vault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.vaults[root]
	if !ok {
		return nil, fmt.Errorf("vault %s: %w", root, domain.ErrNotFound)
	}
	return v, nil
}
