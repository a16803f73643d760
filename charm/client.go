// ABOUTME: Charm KV client used as the synced snapshot backend
// ABOUTME: Lazily opened once per process; tests swap in a Badger-backed store

package charm

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

var (
	sharedClient *Client
	sharedOnce   sync.Once
	sharedErr    error
)

// store is the subset of charm/kv.KV the client relies on.
type store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
}

// Client wraps charm KV with config-driven auto-sync.
type Client struct {
	kv     store
	config *Config
	mu     sync.RWMutex
	local  bool // true for Badger-only test clients
}

// Shared opens the process-wide client on first use.
func Shared() (*Client, error) {
	sharedOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			sharedErr = fmt.Errorf("failed to load charm config: %w", err)
			return
		}
		sharedClient, sharedErr = NewClient(cfg)
	})
	return sharedClient, sharedErr
}

// NewClient opens the growthdesk KV database against cfg.Host.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	// pull remote snapshots before the first read
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return &Client{kv: db, config: cfg}, nil
}

// Config returns the client's config.
func (c *Client) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// ID returns the charm account ID linked to this machine's SSH key.
func (c *Client) ID() (string, error) {
	if c.local {
		return "local", nil
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// IsConnected reports whether the charm server recognises this device.
func (c *Client) IsConnected() bool {
	_, err := c.ID()
	return err == nil
}

// Sync pushes and pulls with the charm server.
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

func (c *Client) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Get(key)
}

// Set stores a value, syncing afterwards when auto-sync is on.
func (c *Client) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set(key, value); err != nil {
		return err
	}
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Delete removes a key, syncing afterwards when auto-sync is on.
func (c *Client) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(key); err != nil {
		return err
	}
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

func (c *Client) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Keys()
}

// Wipe deletes every key and reports how many were removed.
func (c *Client) Wipe() (int, error) {
	keys, err := c.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list keys: %w", err)
	}
	for i, key := range keys {
		if err := c.Delete(key); err != nil {
			return i, fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return len(keys), nil
}
