package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/shopgrid/internal/reveal"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Grid     GridConfig
	UI       UIConfig
	Prefs    PrefsConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// GridConfig holds the reveal settings of the product grid.
type GridConfig struct {
	InitialCount    int    `mapstructure:"initial_count"`
	BatchSize       int    `mapstructure:"batch_size"`
	ProximityMargin string `mapstructure:"proximity_margin"`
}

// Reveal converts the grid settings for the reveal controller.
func (g GridConfig) Reveal() reveal.Config {
	return reveal.Config{
		InitialCount:    g.InitialCount,
		BatchSize:       g.BatchSize,
		ProximityMargin: g.ProximityMargin,
	}.Normalize()
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Locale         string
}

// PrefsConfig locates the user preferences file.
type PrefsConfig struct {
	Path  string
	Watch bool
}

// LogConfig controls the zap logger. The TUI owns the terminal, so logs go to a file.
type LogConfig struct {
	Path  string
	Level string
}

func home() string { return os.Getenv("HOME") }

// Load reads configuration from file and env. Env var overrides use prefix SHOPGRID_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "shopgrid", "shopgrid.db"))
	v.SetDefault("grid.initial_count", reveal.DefaultInitialCount)
	v.SetDefault("grid.batch_size", reveal.DefaultBatchSize)
	v.SetDefault("grid.proximity_margin", reveal.DefaultProximityMargin)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("prefs.path", filepath.Join(home(), ".config", "shopgrid", "preferences.yaml"))
	v.SetDefault("prefs.watch", true)
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "shopgrid", "shopgrid.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SHOPGRID_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "shopgrid"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHOPGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("SHOPGRID_CONFIG")
	if path == "" {
		path = filepath.Join(home(), ".config", "shopgrid", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("grid.initial_count", cfg.Grid.InitialCount)
	v.Set("grid.batch_size", cfg.Grid.BatchSize)
	v.Set("grid.proximity_margin", cfg.Grid.ProximityMargin)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("prefs.path", cfg.Prefs.Path)
	v.Set("prefs.watch", cfg.Prefs.Watch)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
