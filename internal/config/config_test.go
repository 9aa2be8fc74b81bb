package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.perplexity.ai", cfg.Perplexity.BaseURL)
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model)
	assert.Equal(t, 1.0, cfg.Perplexity.Temperature)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, 0.2, cfg.Anthropic.Temperature)
	assert.Equal(t, int64(8192), cfg.Anthropic.MaxTokens)

	assert.Equal(t, "https://geocode.googleapis.com/v4beta", cfg.Geocode.BaseURL)
	assert.Equal(t, "US", cfg.Geocode.RegionCode)
	assert.Equal(t, 10, cfg.Geocode.TimeoutSecs)

	assert.Equal(t, "dqe-fiber-data", cfg.Storage.Bucket)
	assert.Equal(t, "battlecard.db", cfg.Store.Path)
	assert.Equal(t, 10, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BATTLECARD_BATCH_WORKERS", "4")
	t.Setenv("BATTLECARD_PERPLEXITY_KEY", "pk-env")
	t.Setenv("BATTLECARD_ANTHROPIC_KEY", "ak-env")
	t.Setenv("BATTLECARD_STORAGE_BUCKET", "test-bucket")
	t.Setenv("BATTLECARD_STORAGE_LOCAL_PATH", "/tmp/cards")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "pk-env", cfg.Perplexity.Key)
	assert.Equal(t, "ak-env", cfg.Anthropic.Key)
	assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "/tmp/cards", cfg.Storage.LocalPath)
}

func TestLoad_GeocodeKeyFallsBackToGoogleEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "maps-key", cfg.Geocode.Key)
}

func TestLoad_GeocodeKeyPrefersBattlecardEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("BATTLECARD_GEOCODE_KEY", "battlecard-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "battlecard-key", cfg.Geocode.Key)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
anthropic:
  model: claude-haiku-4-5-20251001
batch:
  workers: 2
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(yaml), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "console"}))

	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}
