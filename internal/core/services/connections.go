package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// ExtractConnections builds one NoteConnection per note, in note order.
// A note whose outgoing links cannot be read is treated as having none.
func ExtractConnections(
	ctx context.Context,
	notes []domain.Note,
	index driven.LinkIndex,
) ([]domain.NoteConnection, error) {
	resolved, err := index.ResolvedLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolved links: %w", err)
	}
	backlinks := BacklinkIndex(resolved)

	conns := make([]domain.NoteConnection, 0, len(notes))
	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		links, err := index.OutgoingLinks(ctx, note)
		if err != nil {
			logger.Warn("Reading links of %s: %v", note.Path, err)
			links = nil
		}
		conns = append(conns, NewConnection(note, links, backlinks[note.Path]))
	}

	return conns, nil
}

// NewConnection assembles a connection from already extracted links.
// The slices are copied so the connection does not alias caller state.
func NewConnection(note domain.Note, links, backlinks []string) domain.NoteConnection {
	return domain.NoteConnection{
		Note:         note,
		Links:        append(make([]string, 0, len(links)), links...),
		Backlinks:    append(make([]string, 0, len(backlinks)), backlinks...),
		LastModified: note.LastModified,
	}
}

// BacklinkIndex inverts a resolved-link table into target -> sources.
// Sources are enumerated in sorted order, so each list is sorted and holds
// every source once.
func BacklinkIndex(resolved domain.ResolvedLinkTable) map[string][]string {
	sources := make([]string, 0, len(resolved))
	for source := range resolved {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	index := make(map[string][]string)
	for _, source := range sources {
		for target, count := range resolved[source] {
			if count <= 0 {
				continue
			}
			index[target] = append(index[target], source)
		}
	}
	return index
}

// DetectWeakConnections returns the notes whose links plus backlinks fall
// below threshold, in connection order.
func DetectWeakConnections(conns []domain.NoteConnection, threshold int) []string {
	weak := make([]string, 0)
	for i := range conns {
		if conns[i].IsWeak(threshold) {
			weak = append(weak, conns[i].ID())
		}
	}
	return weak
}

// DetectIsolatedNotes returns the notes with no links and no backlinks.
func DetectIsolatedNotes(conns []domain.NoteConnection) []string {
	isolated := make([]string, 0)
	for i := range conns {
		if conns[i].IsIsolated() {
			isolated = append(isolated, conns[i].ID())
		}
	}
	return isolated
}

// BasicStrength scores each note by its raw link plus backlink count.
func BasicStrength(conns []domain.NoteConnection) domain.StrengthMap {
	strength := make(domain.StrengthMap, len(conns))
	for i := range conns {
		strength[conns[i].ID()] = float64(conns[i].Degree())
	}
	return strength
}

// Summarise builds the single-note connection summary.
func Summarise(conn domain.NoteConnection) *domain.ConnectionSummary {
	return &domain.ConnectionSummary{
		Path:      conn.ID(),
		Outgoing:  len(conn.Links),
		Incoming:  len(conn.Backlinks),
		Links:     conn.Links,
		Backlinks: conn.Backlinks,
	}
}
