// ABOUTME: Byte-level snapshot backends for the demo store
// ABOUTME: Charm KV, XDG file and in-memory implementations share one Load/Save contract

package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/adrg/xdg"
	"github.com/dgraph-io/badger/v3"

	"github.com/harperreed/growthdesk/charm"
)

// ErrNotFound is returned by Load when nothing has been saved under the key.
var ErrNotFound = errors.New("snapshot not found")

// Store is the contract every backend satisfies.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// KVStore keeps snapshots in Charm KV, which syncs them to the charm server when auto-sync is on.
type KVStore struct {
	client *charm.Client
}

func NewKVStore(client *charm.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Load(key string) ([]byte, error) {
	data, err := s.client.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s from kv: %w", key, err)
	}
	return data, nil
}

func (s *KVStore) Save(key string, data []byte) error {
	if err := s.client.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to write %s to kv: %w", key, err)
	}
	return nil
}

// FileStore writes one JSON file per key into a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultFileStore stores snapshots under $XDG_DATA_HOME/growthdesk/state.
func DefaultFileStore() (*FileStore, error) {
	return NewFileStore(filepath.Join(xdg.DataHome, "growthdesk", "state"))
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *FileStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// Save writes through a temp file and rename so readers never see a partial snapshot.
func (s *FileStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// MemoryStore keeps snapshots in process. Used when persistence is disabled and in tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
