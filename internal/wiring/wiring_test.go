package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/app"
	_ "go.trai.ch/gbfsync/internal/wiring"
)

// TestComponentsResolve builds the whole node graph from the default
// configuration without touching the network.
func TestComponentsResolve(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GBFSYNC_WIKI_API_URL", "http://127.0.0.1:9/api.php")
	t.Setenv("GBFSYNC_LEDGER_PATH", ":memory:")

	c, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NotNil(t, c.App)
	assert.NotNil(t, c.Logger)

	runs, err := c.App.History(t.Context(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
	require.NoError(t, c.App.Close())
}
