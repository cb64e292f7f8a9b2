package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := OpenFileStore(path)
	require.NoError(t, err)

	id, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, store.Save("S1"))
	id, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "S1", id)

	// saving again overwrites, it does not accumulate rows
	require.NoError(t, store.Save("S2"))
	id, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "S2", id)

	require.NoError(t, store.Clear())
	id, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("S1"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	id, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "S1", id)
}
