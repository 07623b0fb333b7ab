package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

func withSummary(ts *testServices) {
	ts.analysis.summary = &domain.ConnectionSummary{
		Path:      "ideas/graph.md",
		Outgoing:  2,
		Incoming:  1,
		Links:     []string{"a.md", "b.md"},
		Backlinks: []string{"index.md"},
	}
}

func TestNoteCmd_RequiresPath(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("note")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestNoteCmd_PrintsSummary(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	withSummary(ts)

	out, err := execute("note", "--vault", "/vault", "ideas/graph")

	require.NoError(t, err)
	assert.Equal(t, []string{"/vault", "ideas/graph"}, ts.analysis.noteArgs)
	assert.Contains(t, out, "Note analysis complete. Total connections: 3, Outgoing: 2, Incoming: 1")
	assert.Contains(t, out, "index.md")
}

func TestNoteCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	withSummary(ts)

	out, err := execute("note", "--json", "ideas/graph.md")

	require.NoError(t, err)
	var decoded domain.ConnectionSummary
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 3, decoded.Total())
}

func TestNoteCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("note", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
