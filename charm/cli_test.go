package charm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStatusReportsConnection(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()
	require.NoError(t, c.Set([]byte("snapshot"), []byte("{}")))

	var out bytes.Buffer
	writeStatus(&out, c.Config(), c)

	assert.Contains(t, out.String(), "Status: Connected to Charm Cloud")
	assert.Contains(t, out.String(), "ID:        local")
	assert.Contains(t, out.String(), "Keys:      1")
}

func TestWriteStatusWithoutClient(t *testing.T) {
	var out bytes.Buffer
	writeStatus(&out, &Config{Host: "cloud.charm.sh"}, nil)

	assert.Contains(t, out.String(), "Server:    cloud.charm.sh")
	assert.Contains(t, out.String(), "Status: Not connected")
}

func TestSyncWipeRequiresConfirm(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, SyncWipeCommand(&out, nil))

	assert.Contains(t, out.String(), "WARNING")
	assert.Contains(t, out.String(), "growthdesk sync wipe --confirm")
}

func TestWipeDeletesEveryKey(t *testing.T) {
	c, cleanup := NewTestClient(t)
	defer cleanup()
	require.NoError(t, c.Set([]byte("snapshot"), []byte("{}")))
	require.NoError(t, c.Set([]byte("snapshot.prev"), []byte("{}")))

	var out bytes.Buffer
	require.NoError(t, wipe(&out, c))
	assert.Contains(t, out.String(), "✓ Wiped 2 key(s)")

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
