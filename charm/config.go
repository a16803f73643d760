// ABOUTME: Charm server settings for snapshot sync
// ABOUTME: Stored as JSON next to the growthdesk data directory

package charm

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName names both the KV database and the data directory.
	AppName = "growthdesk"

	ConfigFileName = "charm-config.json"
)

// Config holds charm connection settings.
type Config struct {
	Host     string `json:"host,omitempty"`
	AutoSync bool   `json:"auto_sync"`
}

func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultCharmHost,
		AutoSync: true,
	}
}

func configPath() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, ConfigFileName), nil
}

// LoadConfig reads the config file, falling back to defaults when it is
// missing or unreadable.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil //nolint:nilerr // no data dir means defaults
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil //nolint:nilerr // corrupt file means defaults
	}
	if cfg.Host == "" {
		cfg.Host = DefaultCharmHost
	}
	return cfg, nil
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
