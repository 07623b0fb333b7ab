package driven

import (
	"context"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// LinkIndex exposes declared and resolved links of a vault.
type LinkIndex interface {
	// OutgoingLinks returns the note's link targets in declaration order,
	// duplicates preserved. Targets that resolve to a note are reported by
	// that note's identifier; dangling targets keep their link text.
	OutgoingLinks(ctx context.Context, note domain.Note) ([]string, error)

	// ResolvedLinks returns the global source -> target table.
	ResolvedLinks(ctx context.Context) (domain.ResolvedLinkTable, error)
}

// Vault is a DocumentSource that also indexes its links.
type Vault interface {
	DocumentSource
	LinkIndex

	// Root returns the vault location.
	Root() string
}

// VaultOpener opens a vault by location.
type VaultOpener interface {
	// Open scans the vault at root and returns a snapshot of it.
	Open(ctx context.Context, root string) (Vault, error)
}
