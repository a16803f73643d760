package charm

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestClientRoundTrip(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	require.NoError(t, c.Set([]byte("snapshot"), []byte(`{"version":2}`)))

	got, err := c.Get([]byte("snapshot"))
	require.NoError(t, err)
	assert.Equal(t, `{"version":2}`, string(got))

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	require.NoError(t, c.Delete([]byte("snapshot")))
	_, err = c.Get([]byte("snapshot"))
	assert.True(t, errors.Is(err, badger.ErrKeyNotFound))
}

func TestTestClientIsLocal(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()

	assert.True(t, c.IsConnected())
	assert.NoError(t, c.Sync())
	assert.False(t, c.Config().AutoSync)
}
