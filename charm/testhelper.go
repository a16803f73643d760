// ABOUTME: Badger-backed charm clients for tests
// ABOUTME: Same Client API with no charm server or SSH keys involved

package charm

import (
	"testing"

	"github.com/dgraph-io/badger/v3"
)

// badgerStore adapts a raw Badger database to the store interface.
type badgerStore struct {
	db *badger.DB
}

func (b *badgerStore) Get(key []byte) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

func (b *badgerStore) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *badgerStore) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *badgerStore) Keys() ([][]byte, error) {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (b *badgerStore) Sync() error { return nil }

// NewTestClient opens a Badger database in a per-test temp dir. The returned
// cleanup closes it; the directory is removed by the testing package.
func NewTestClient(t *testing.T) (*Client, func()) {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}

	c := &Client{
		kv:     &badgerStore{db: db},
		config: &Config{Host: "localhost", AutoSync: false},
		local:  true,
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	}
	return c, cleanup
}
