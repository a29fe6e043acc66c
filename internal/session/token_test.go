package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiralabs/kira/pkg/client"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save(client.Token{Access: "abc", Type: "bearer"}))

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.Access)
	assert.Equal(t, "bearer", tok.Type)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileStoreLoadTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("abc\n"), 0600))

	tok, err := NewFileStore(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.Access)
	assert.Empty(t, tok.Type, "missing token_type file defaults to empty scheme")
}

func TestFileStoreLoadEmptyFileIsNoToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("  \n"), 0600))

	_, err := NewFileStore(dir).Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileStoreSaveWithoutTypeRemovesStaleTypeFile(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(client.Token{Access: "abc", Type: "bearer"}))
	require.NoError(t, store.Save(client.Token{Access: "def"}))

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "def", tok.Access)
	assert.Empty(t, tok.Type)
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(client.Token{Access: "abc", Type: "bearer"}))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	// Clearing again is fine.
	require.NoError(t, store.Clear())
}

func TestFileStorePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save(client.Token{Access: "abc"}))

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStaticStore(t *testing.T) {
	store := NewStaticStore("env-token")

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", tok.Access)

	// Save and Clear are no-ops: the environment cannot be revoked.
	require.NoError(t, store.Save(client.Token{Access: "other"}))
	require.NoError(t, store.Clear())

	tok, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", tok.Access)
}

func TestStaticStoreEmpty(t *testing.T) {
	_, err := NewStaticStore("").Load()
	assert.ErrorIs(t, err, ErrNoToken)
}
