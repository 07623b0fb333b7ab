package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out, err := execute(args...)

		require.NoError(t, err)
		assert.Contains(t, out, "Path: (not set)")
		assert.Contains(t, out, "Weak threshold:      3")
		assert.Contains(t, out, "Backlink weight:     1.5")
		assert.Contains(t, out, "Workers:             auto")
		assert.Contains(t, out, "Concept stop words:  false")
		assert.Contains(t, out, "Store runs: true")
		assert.NotContains(t, out, "Invalid settings")
	}
}

func TestSettingsCmd_ShowWarnsWhenInvalid(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Analysis.BacklinkWeight = 0.5

	out, err := execute("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Invalid settings")
}

func TestSettingsCmd_Set(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "set", "vault.path", "/notes")

	require.NoError(t, err)
	assert.Contains(t, out, "vault.path = /notes")
	assert.Equal(t, "/notes", ts.settings.settings.Vault.Path)

	_, err = execute("settings", "set", "unknown.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute("settings", "set", "vault.path")
	assert.Error(t, err)
}

func TestSettingsCmd_Keys(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "vault.path")
	assert.Contains(t, out, "analysis.weak_threshold")
}
