package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
)

func TestAnalyseCmd_Metadata(t *testing.T) {
	assert.Equal(t, "analyse [vault]", analyseCmd.Use)
	assert.Contains(t, analyseCmd.Aliases, "analyze")

	for _, name := range []string{"json", "no-store", "weak-threshold"} {
		assert.NotNil(t, analyseCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestAnalyseCmd_PrintsReport(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("analyse", "/vault")

	require.NoError(t, err)
	assert.Contains(t, out, "Analysis complete. Total notes: 3, Weak connections: 3, Isolated notes: 1")
	assert.Contains(t, out, "Strongest notes")
	assert.Contains(t, out, "1. b.md  1.50")
	assert.Contains(t, out, "Most central notes")
	assert.Contains(t, out, "Top concepts")
	assert.Contains(t, out, "graph")
	assert.Contains(t, out, "lonely.md")
	assert.NotContains(t, out, "Content analysis skipped")
}

func TestAnalyseCmd_PassesRequest(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("analyse", "--no-store", "--weak-threshold", "5", "/vault")

	require.NoError(t, err)
	require.Len(t, ts.analysis.requests, 1)
	assert.Equal(t, driving.AnalysisRequest{VaultPath: "/vault", WeakThreshold: 5, SkipStore: true}, ts.analysis.requests[0])
}

func TestAnalyseCmd_DefaultVault(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("analyse")

	require.NoError(t, err)
	assert.Equal(t, "", ts.analysis.requests[0].VaultPath)
}

func TestAnalyseCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("analyse", "--json", "/vault")

	require.NoError(t, err)
	var decoded domain.AnalysisResults
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Len(t, decoded.Connections, 3)
}

func TestAnalyseCmd_ReportsFailures(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.analysis.results.Partial = true
	ts.analysis.results.Failures = []domain.DocumentFailure{{Path: "broken.md", Reason: "permission denied"}}

	out, err := execute("analyse", "/vault")

	require.NoError(t, err)
	assert.Contains(t, out, "Content analysis skipped for 1 notes")
	assert.Contains(t, out, "broken.md: permission denied")
}

func TestAnalyseCmd_Errors(t *testing.T) {
	t.Run("service error", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.analysis.runErr = domain.ErrVaultNotConfigured

		_, err := execute("analyse")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrVaultNotConfigured))
	})

	t.Run("negative threshold", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()

		_, err := execute("analyse", "--weak-threshold", "-1")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, ts.analysis.requests)
	})

	t.Run("too many args", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		_, err := execute("analyse", "a", "b")

		assert.Error(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		analysisService = nil

		_, err := execute("analyse")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "analysis service not configured")
	})
}

func TestAnalyseCmd_LimitsConcepts(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	concepts := make([]domain.Concept, 0, 15)
	for i := 0; i < 15; i++ {
		concepts = append(concepts, domain.Concept{Term: string(rune('a'+i)) + "term", Frequency: 15 - i})
	}
	ts.analysis.results.Concepts = concepts

	out, err := execute("analyse", "/vault")

	require.NoError(t, err)
	assert.Contains(t, out, "jterm")
	assert.NotContains(t, out, "kterm")
}
