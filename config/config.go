// ABOUTME: Application configuration from .env, an XDG config file and environment overrides
// ABOUTME: Also builds the shared charmbracelet logger

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	// AppName names the XDG data directory.
	AppName = "growthdesk"

	ConfigFileName = "config.json"

	DefaultModel = "gpt-4-turbo"
	DefaultPort  = 8080
)

// Persistence backends for the demo snapshot.
const (
	PersistCharm = "charm"
	PersistFile  = "file"
	PersistNone  = "none"
)

// Config holds everything the binaries need to start.
type Config struct {
	OpenAIKey   string `json:"openai_api_key,omitempty"`
	Model       string `json:"model,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	Port        int    `json:"port,omitempty"`
	Persist     string `json:"persist,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	SampleMode  bool   `json:"sample_mode"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:       DefaultModel,
		DatabaseURL: DefaultDatabasePath(),
		Port:        DefaultPort,
		Persist:     PersistFile,
		LogLevel:    "info",
		SampleMode:  true,
	}
}

// Dir is $XDG_DATA_HOME/growthdesk.
func Dir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Path is the JSON config file location.
func Path() string {
	return filepath.Join(Dir(), ConfigFileName)
}

// DefaultDatabasePath is the sqlite file used when no DSN is configured.
func DefaultDatabasePath() string {
	return filepath.Join(Dir(), "growthdesk.db")
}

// Load reads .env (if present), then the config file, then environment overrides:
//   - OPENAI_API_KEY, NEXT_PUBLIC_OPENAI_API_KEY, OPENAI_KEY (first non-empty wins)
//   - GROWTHDESK_MODEL
//   - GROWTHDESK_DATABASE_URL
//   - GROWTHDESK_PORT
//   - GROWTHDESK_PERSIST (charm, file or none)
//   - GROWTHDESK_LOG_LEVEL
//   - GROWTHDESK_SAMPLE_MODE
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(Path())
}

// LoadFrom is Load without the .env step, reading the config file at path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabasePath()
	}
	switch cfg.Persist {
	case PersistCharm, PersistFile, PersistNone:
	default:
		return nil, fmt.Errorf("invalid persist backend %q (want charm, file or none)", cfg.Persist)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	for _, key := range []string{"OPENAI_API_KEY", "NEXT_PUBLIC_OPENAI_API_KEY", "OPENAI_KEY"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cfg.OpenAIKey = v
			break
		}
	}
	cfg.Model = getEnv("GROWTHDESK_MODEL", cfg.Model)
	cfg.DatabaseURL = getEnv("GROWTHDESK_DATABASE_URL", cfg.DatabaseURL)
	cfg.Port = getEnvInt("GROWTHDESK_PORT", cfg.Port)
	cfg.Persist = strings.ToLower(getEnv("GROWTHDESK_PERSIST", cfg.Persist))
	cfg.LogLevel = getEnv("GROWTHDESK_LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("GROWTHDESK_SAMPLE_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SampleMode = b
		}
	}
}

// Save writes the config file with owner-only permissions.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// AIConfigured reports whether a model key is present.
func (c *Config) AIConfigured() bool {
	return c.OpenAIKey != ""
}

// NewLogger builds the root logger writing to w at the named level.
func NewLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          AppName,
	})
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
