package driven

import (
	"context"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// VaultWatcher reports changes to the notes of a vault.
type VaultWatcher interface {
	// Watch streams note changes under root until ctx is cancelled.
	// Both channels are closed when watching stops.
	Watch(ctx context.Context, root string) (<-chan domain.VaultChange, <-chan error, error)
}
