package driven

import (
	"context"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// DocumentSource supplies the notes of a vault.
// The returned notes are a read-only snapshot for one analysis run.
type DocumentSource interface {
	// ListDocuments returns every note in a stable order.
	ListDocuments(ctx context.Context) ([]domain.Note, error)

	// ReadText returns the raw text of a note.
	// A failure affects only that note.
	ReadText(ctx context.Context, note domain.Note) (string, error)
}

// TextFetcher reads the text of a note on demand.
type TextFetcher func(ctx context.Context, note domain.Note) (string, error)
