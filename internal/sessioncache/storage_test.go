package sessioncache

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/lendora/server/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, storage.Save(Snapshot{
		User:       &client.User{ID: "user-1", ProfileStatus: client.StatusPending},
		Credential: "secret",
	}))

	info, err := os.Stat(filepath.Join(dir, snapshotFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err = storage.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "user-1", loaded.User.ID)
	assert.Equal(t, "secret", loaded.Credential)

	require.NoError(t, storage.Clear())
	require.NoError(t, storage.Clear())

	loaded, err = storage.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{"), 0o600))

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	_, err = storage.Load()
	assert.Error(t, err)
}
