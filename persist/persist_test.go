package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/growthdesk/charm"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Load("ai-realestate-sample-mode")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save("ai-realestate-sample-mode", []byte(`{"version":2,"state":{}}`)))
	require.NoError(t, s.Save("ai-realestate-sample-mode", []byte(`{"version":2,"state":{"insight":"x"}}`)))

	data, err := s.Load("ai-realestate-sample-mode")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2,"state":{"insight":"x"}}`, string(data))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	exerciseStore(t, s)

	info, err := os.Stat(filepath.Join(dir, "ai-realestate-sample-mode.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save("../escape/key", []byte("{}")))
	_, err = os.Stat(filepath.Join(dir, ".._escape_key.json"))
	assert.NoError(t, err)
}

func TestKVStore(t *testing.T) {
	client, cleanup := charm.NewTestClient(t)
	defer cleanup()

	exerciseStore(t, NewKVStore(client))
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Save("k", buf))
	buf[0] = 'z'

	got, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
