package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

func TestBacklinkIndex(t *testing.T) {
	table := domain.ResolvedLinkTable{
		"c.md": {"b.md": 1},
		"a.md": {"b.md": 1, "c.md": 2},
		"b.md": {"a.md": 0},
	}

	index := BacklinkIndex(table)

	assert.Equal(t, []string{"a.md", "c.md"}, index["b.md"])
	assert.Equal(t, []string{"a.md"}, index["c.md"])
	assert.NotContains(t, index, "a.md")
}

func TestBacklinkIndex_Empty(t *testing.T) {
	assert.Empty(t, BacklinkIndex(nil))
}

func TestExtractConnections_Cycle(t *testing.T) {
	ctx := context.Background()
	v := cycleVault()
	notes, err := v.ListDocuments(ctx)
	require.NoError(t, err)

	conns, err := ExtractConnections(ctx, notes, v)

	require.NoError(t, err)
	require.Len(t, conns, 3)
	assert.Equal(t, "a.md", conns[0].ID())
	assert.Equal(t, []string{"b.md"}, conns[0].Links)
	assert.Equal(t, []string{"c.md"}, conns[0].Backlinks)
	assert.Equal(t, stale, conns[0].LastModified)
}

func TestExtractConnections_DuplicateLinksPreserved(t *testing.T) {
	index := &stubIndex{
		links:    map[string][]string{"a.md": {"b.md", "b.md"}},
		resolved: domain.ResolvedLinkTable{"a.md": {"b.md": 2}},
	}
	notes := []domain.Note{note("a.md", stale), note("b.md", stale)}

	conns, err := ExtractConnections(context.Background(), notes, index)

	require.NoError(t, err)
	assert.Equal(t, []string{"b.md", "b.md"}, conns[0].Links)
	assert.Equal(t, []string{"a.md"}, conns[1].Backlinks)
}

func TestExtractConnections_NoLinkData(t *testing.T) {
	index := &stubIndex{}
	notes := []domain.Note{note("lonely.md", stale)}

	conns, err := ExtractConnections(context.Background(), notes, index)

	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.NotNil(t, conns[0].Links)
	assert.NotNil(t, conns[0].Backlinks)
	assert.Empty(t, conns[0].Links)
	assert.Empty(t, conns[0].Backlinks)
}

func TestExtractConnections_OutgoingFailureIsEmpty(t *testing.T) {
	index := &stubIndex{
		linkErr:  map[string]error{"a.md": errors.New("unreadable")},
		resolved: domain.ResolvedLinkTable{"b.md": {"a.md": 1}},
	}
	notes := []domain.Note{note("a.md", stale), note("b.md", stale)}

	conns, err := ExtractConnections(context.Background(), notes, index)

	require.NoError(t, err)
	assert.Empty(t, conns[0].Links)
	assert.Equal(t, []string{"b.md"}, conns[0].Backlinks)
}

func TestExtractConnections_ResolvedTableFailure(t *testing.T) {
	index := &stubIndex{tableErr: errors.New("index offline")}

	_, err := ExtractConnections(context.Background(), []domain.Note{note("a.md", stale)}, index)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolved links")
}

func TestExtractConnections_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractConnections(ctx, []domain.Note{note("a.md", stale)}, &stubIndex{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewConnection_CopiesSlices(t *testing.T) {
	links := []string{"b.md"}
	c := NewConnection(note("a.md", stale), links, nil)
	links[0] = "changed.md"

	assert.Equal(t, []string{"b.md"}, c.Links)
}

func TestDetectWeakConnections(t *testing.T) {
	conns := []domain.NoteConnection{
		conn("hub.md", []string{"a.md", "b.md"}, []string{"c.md"}),
		conn("leaf.md", []string{"hub.md"}, nil),
		conn("alone.md", nil, nil),
	}

	tests := []struct {
		name      string
		threshold int
		want      []string
	}{
		{"default threshold", 3, []string{"leaf.md", "alone.md"}},
		{"threshold one", 1, []string{"alone.md"}},
		{"threshold zero", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectWeakConnections(conns, tt.threshold))
		})
	}
}

func TestDetectIsolatedNotes(t *testing.T) {
	conns := []domain.NoteConnection{
		conn("a.md", []string{"b.md"}, nil),
		conn("b.md", nil, []string{"a.md"}),
		conn("c.md", nil, nil),
	}

	assert.Equal(t, []string{"c.md"}, DetectIsolatedNotes(conns))
	assert.Empty(t, DetectIsolatedNotes(nil))
}

func TestBasicStrength(t *testing.T) {
	conns := []domain.NoteConnection{
		conn("a.md", []string{"b.md", "b.md"}, []string{"c.md"}),
		conn("c.md", nil, nil),
	}

	strength := BasicStrength(conns)

	assert.Equal(t, 3.0, strength["a.md"])
	assert.Equal(t, 0.0, strength["c.md"])
}

func TestSummarise(t *testing.T) {
	summary := Summarise(conn("a.md", []string{"b.md", "c.md"}, []string{"d.md"}))

	assert.Equal(t, "a.md", summary.Path)
	assert.Equal(t, 2, summary.Outgoing)
	assert.Equal(t, 1, summary.Incoming)
	assert.Equal(t, 3, summary.Total())
}
