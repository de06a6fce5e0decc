package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/playbox/internal/browse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, 4, cfg.UI.GridColumns)
	assert.True(t, cfg.UI.ShowBanner)
	assert.Equal(t, 30*time.Second, cfg.Catalog.FetchTimeout)
	assert.Equal(t, browse.DefaultOptions(), cfg.BrowseOptions())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
server:
  url: http://localhost:3000
browse:
  filter_mode: exclusive
  invalid_year: keep
catalog:
  refresh_interval: 5m
ui:
  grid_columns: 0
`)

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, "http://localhost:3000", cfg.Server.URL)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, 1, cfg.UI.GridColumns)
	assert.Equal(t, browse.Options{Mode: browse.ModeExclusive, InvalidYear: browse.InvalidYearKeep}, cfg.BrowseOptions())
	// Untouched sections keep their defaults.
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "server:\n  url: http://file:3000\n")
	t.Setenv("PLAYBOX_SERVER_URL", "http://env:3000")
	t.Setenv("PLAYBOX_UI_GRID_COLUMNS", "6")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://env:3000", cfg.Server.URL)
	assert.Equal(t, 6, cfg.UI.GridColumns)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "PLAYBOX_SERVER_TOKEN=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("PLAYBOX_SERVER_TOKEN") })

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Server.Token)
}

func TestLoadConfig_InvalidBrowseMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "browse:\n  filter_mode: sometimes\n")

	_, err := LoadConfigFrom(dir)
	assert.ErrorContains(t, err, "browse.filter_mode")
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "server: [unclosed\n")

	_, err := LoadConfigFrom(dir)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Server.URL = "http://saved:3000"
	cfg.Catalog.RefreshInterval = 90 * time.Second
	cfg.Browse.FilterMode = string(browse.ModeExclusive)

	require.NoError(t, SaveConfigTo(cfg, dir))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:3000", loaded.Server.URL)
	assert.Equal(t, 90*time.Second, loaded.Catalog.RefreshInterval)
	assert.Equal(t, browse.ModeExclusive, loaded.BrowseOptions().Mode)
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc"), 0755))

	require.NoError(t, ClearCache(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearCache(""))
}
