package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	store, err := NewStore(path)
	require.NoError(t, err)
	return store.(*Store), path
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("")
	assert.Error(t, err)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users, "missing file must yield an empty mapping")
}

func TestStore_SaveThenLoad(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "hash-a"))
	require.NoError(t, store.Save(ctx, "bob", "hash-b"))

	users, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"alice": "hash-a",
		"bob":   "hash-b",
	}, users)

	// records are appended as username:hash lines
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice:hash-a\nbob:hash-b\n", string(raw))
}

func TestStore_LoadSkipsMalformedLines(t *testing.T) {
	store, path := newTestStore(t)

	content := "\n" +
		"no-separator-line\n" +
		"  \n" +
		"alice:hash-a\n" +
		":\n" +
		"  bob : hash-b \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"alice": "hash-a",
		"bob":   "hash-b",
	}, users)
}

func TestStore_LoadFirstOccurrenceWins(t *testing.T) {
	store, path := newTestStore(t)

	content := "alice:first\nalice:second\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", users["alice"])
}

func TestStore_SaveAppendsToExisting(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("alice:hash-a\n"), 0o600))
	require.NoError(t, store.Save(ctx, "bob", "hash-b"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice:hash-a\nbob:hash-b\n", string(raw))
}
