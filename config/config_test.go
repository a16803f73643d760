package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "NEXT_PUBLIC_OPENAI_API_KEY", "OPENAI_KEY",
		"GROWTHDESK_MODEL", "GROWTHDESK_DATABASE_URL", "GROWTHDESK_PORT",
		"GROWTHDESK_PERSIST", "GROWTHDESK_LOG_LEVEL", "GROWTHDESK_SAMPLE_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, PersistFile, cfg.Persist)
	assert.True(t, cfg.SampleMode)
	assert.False(t, cfg.AIConfigured())
	assert.Equal(t, DefaultDatabasePath(), cfg.DatabaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")

	fileCfg := Default()
	fileCfg.Model = "gpt-4o"
	fileCfg.Port = 9000
	require.NoError(t, fileCfg.SaveTo(path))

	t.Setenv("NEXT_PUBLIC_OPENAI_API_KEY", "sk-public")
	t.Setenv("OPENAI_KEY", "sk-late")
	t.Setenv("GROWTHDESK_PORT", "7070")
	t.Setenv("GROWTHDESK_PERSIST", "CHARM")
	t.Setenv("GROWTHDESK_SAMPLE_MODE", "false")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-public", cfg.OpenAIKey, "first non-empty key wins")
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, PersistCharm, cfg.Persist)
	assert.False(t, cfg.SampleMode)
}

func TestInvalidPersistBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROWTHDESK_PERSIST", "s3")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSaveUsesOwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, Default().SaveTo(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCorruptConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger = NewLogger(&buf, "bogus")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}
