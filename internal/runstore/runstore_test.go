package runstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertAndGet(t *testing.T) {
	store := openTestStore(t)

	params, err := json.Marshal(map[string]interface{}{"learning_rate": 1e-4, "batch_size": 16})
	require.NoError(t, err)

	run := &Run{
		ParamsJSON:  params,
		Epochs:      40,
		BestValLoss: 0.12,
		BestValAcc:  0.87,
		Notes:       "baseline",
	}
	require.NoError(t, store.Insert(run))

	// Insert fills in identity and timestamp.
	assert.NotEmpty(t, run.RunID)
	assert.NotZero(t, run.CreatedAt)

	got, err := store.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, 40, got.Epochs)
	assert.Equal(t, 0.12, got.BestValLoss)
	assert.Equal(t, "baseline", got.Notes)
	assert.JSONEq(t, string(params), string(got.ParamsJSON))
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get("no-such-run")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestListOrdered(t *testing.T) {
	store := openTestStore(t)

	for i, loss := range []float64{0.5, 0.3, 0.4} {
		require.NoError(t, store.Insert(&Run{
			Epochs:      10,
			BestValLoss: loss,
			CreatedAt:   int64(i + 1), // explicit, ascending
		}))
	}

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, int64(3), runs[0].CreatedAt)
	assert.Equal(t, int64(1), runs[2].CreatedAt)
}

func TestBest(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Best()
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	require.NoError(t, store.Insert(&Run{BestValLoss: 0.5, Epochs: 10}))
	best := &Run{BestValLoss: 0.2, Epochs: 10}
	require.NoError(t, store.Insert(best))
	require.NoError(t, store.Insert(&Run{BestValLoss: 0.4, Epochs: 10}))

	got, err := store.Best()
	require.NoError(t, err)
	assert.Equal(t, best.RunID, got.RunID)
	assert.Equal(t, 0.2, got.BestValLoss)
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Insert(&Run{Epochs: 1, BestValLoss: 1}))
	require.NoError(t, store.Close())

	// Reopening must keep existing rows.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
