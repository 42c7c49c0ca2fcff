package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdsproject/deployment-smoke-tests/probes"
	"github.com/tdsproject/deployment-smoke-tests/suite"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordRunRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := suite.EnvironmentResults{
		Health:       probes.Result{Status: probes.StatusSuccess},
		Capabilities: probes.Result{Status: probes.StatusSuccess},
		MainAPI:      probes.Result{Status: probes.StatusError, Error: "boom"},
		Duration:     12 * time.Second,
		Timed:        true,
	}
	startedAt := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(ctx, "vercel", startedAt, results))

	runs, err := store.Runs(ctx, "vercel")
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "vercel", run.Environment)
	assert.Equal(t, startedAt, run.StartedAt)
	assert.Equal(t, probes.StatusSuccess, run.Health)
	assert.Equal(t, probes.StatusSuccess, run.Capabilities)
	assert.Equal(t, probes.StatusError, run.MainAPI)
	assert.True(t, run.Timed)
	assert.Equal(t, 12*time.Second, run.Duration)
	assert.False(t, run.Passed)
}

func TestRecordRunWithoutTimingStoresNullDuration(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	pass := probes.Result{Status: probes.StatusSuccess}
	results := suite.EnvironmentResults{Health: pass, Capabilities: pass, MainAPI: pass}
	require.NoError(t, store.RecordRun(ctx, "local", time.Now(), results))

	runs, err := store.Runs(ctx, "local")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Timed)
	assert.True(t, runs[0].Passed)
}

func TestRunsAreScopedToEnvironmentAndMostRecentFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	pass := probes.Result{Status: probes.StatusSuccess}
	fail := probes.Result{Status: probes.StatusError, Error: "x"}
	require.NoError(t, store.RecordRun(ctx, "local", time.Now(),
		suite.EnvironmentResults{Health: pass, Capabilities: pass, MainAPI: pass}))
	require.NoError(t, store.RecordRun(ctx, "local", time.Now(),
		suite.EnvironmentResults{Health: fail, Capabilities: pass, MainAPI: pass}))
	require.NoError(t, store.RecordRun(ctx, "vercel", time.Now(),
		suite.EnvironmentResults{Health: pass, Capabilities: pass, MainAPI: pass}))

	local, err := store.Runs(ctx, "local")
	require.NoError(t, err)
	require.Len(t, local, 2)
	assert.False(t, local[0].Passed) // most recent first
	assert.True(t, local[1].Passed)

	vercel, err := store.Runs(ctx, "vercel")
	require.NoError(t, err)
	assert.Len(t, vercel, 1)
}
