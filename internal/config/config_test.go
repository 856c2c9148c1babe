package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Headless)
	assert.Equal(t, 25, cfg.MaxItemsPerURL)
	assert.Equal(t, 100, cfg.TotalItemsLimit)
	assert.Equal(t, 3, cfg.DetailConcurrency)
	assert.Equal(t, 30000, cfg.RequestTimeoutMs)
	assert.Equal(t, 2, cfg.RetryAttempts)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_YamlAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
max_items_per_url: 7
total_items_limit: 40
detail_concurrency: 5
database_url: postgres://from-yaml
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	t.Setenv("DATABASE_URL", "postgres://from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxItemsPerURL)
	assert.Equal(t, 40, cfg.TotalItemsLimit)
	assert.Equal(t, 5, cfg.DetailConcurrency)
	//env wins over yaml
	assert.Equal(t, "postgres://from-env", cfg.DatabaseURL)
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
}

func TestLoad_InvalidChatID(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
