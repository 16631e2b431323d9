package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/shopgrid/internal/reveal"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SHOPGRID_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ".local", "share", "shopgrid", "shopgrid.db"), cfg.Database.Path)
	require.Equal(t, reveal.DefaultConfig(), cfg.Grid.Reveal())
	require.Equal(t, "en", cfg.UI.Locale)
	require.True(t, cfg.Prefs.Watch)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[grid]
initial_count = 6
batch_size = 4
proximity_margin = "5rows"

[ui]
currency_symbol = "€"
`), 0o644))
	t.Setenv("HOME", dir)
	t.Setenv("SHOPGRID_CONFIG", path)
	t.Setenv("SHOPGRID_GRID_BATCH_SIZE", "9")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, reveal.Config{InitialCount: 6, BatchSize: 9, ProximityMargin: "5rows"}, cfg.Grid.Reveal())
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("HOME", dir)
	t.Setenv("SHOPGRID_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Grid.InitialCount = 3
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestRevealNormalizesBadValues(t *testing.T) {
	got := GridConfig{InitialCount: 0, BatchSize: -2}.Reveal()
	require.Equal(t, reveal.DefaultConfig(), got)
}
