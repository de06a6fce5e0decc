package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mmcdole/playbox/internal/browse"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds catalog server configuration
type ServerConfig struct {
	URL   string `mapstructure:"url"`   // e.g. http://localhost:3000
	Token string `mapstructure:"token"` // Optional session token
}

// CatalogConfig holds fetch and cache configuration
type CatalogConfig struct {
	CacheDir        string        `mapstructure:"cache_dir"`        // Empty disables the disk cache
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 disables periodic refetch
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
}

// BrowseConfig holds filtering behaviour
type BrowseConfig struct {
	FilterMode  string `mapstructure:"filter_mode"`  // "combined" or "exclusive"
	InvalidYear string `mapstructure:"invalid_year"` // "empty" or "keep"
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int  `mapstructure:"grid_columns"`
	ShowBanner  bool `mapstructure:"show_banner"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "",
		},
		Catalog: CatalogConfig{
			CacheDir:        defaultCachePath(),
			RefreshInterval: 0,
			FetchTimeout:    30 * time.Second,
		},
		Browse: BrowseConfig{
			FilterMode:  string(browse.ModeCombined),
			InvalidYear: string(browse.InvalidYearEmpty),
		},
		UI: UIConfig{
			GridColumns: 4,
			ShowBanner:  true,
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "playbox", "playbox.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "playbox", "playbox.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "playbox")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "playbox")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "playbox", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "playbox", "cache")
	}
}

// LoadConfig loads configuration from the default config directory, .env
// files and PLAYBOX_* environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath())
}

// LoadConfigFrom loads configuration with configDir searched before the
// working directory
func LoadConfigFrom(configDir string) (*Config, error) {
	// .env never overrides variables already set in the environment
	_ = godotenv.Load(filepath.Join(configDir, ".env"))
	_ = godotenv.Load(".env")

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper creates a viper instance with every key defaulted so that
// environment overrides apply even without a config file
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PLAYBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setValues(v.SetDefault, DefaultConfig())
	return v
}

// setValues writes every config field through set using snake_case keys
func setValues(set func(key string, value any), cfg *Config) {
	set("server.url", cfg.Server.URL)
	set("server.token", cfg.Server.Token)

	set("catalog.cache_dir", cfg.Catalog.CacheDir)
	set("catalog.refresh_interval", cfg.Catalog.RefreshInterval)
	set("catalog.fetch_timeout", cfg.Catalog.FetchTimeout)

	set("browse.filter_mode", cfg.Browse.FilterMode)
	set("browse.invalid_year", cfg.Browse.InvalidYear)

	set("ui.grid_columns", cfg.UI.GridColumns)
	set("ui.show_banner", cfg.UI.ShowBanner)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	set("logging.max_backups", cfg.Logging.MaxBackups)
	set("logging.max_age_days", cfg.Logging.MaxAgeDays)
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if _, err := browse.ParseMode(c.Browse.FilterMode); err != nil {
		return fmt.Errorf("browse.filter_mode: %w", err)
	}
	if _, err := browse.ParseInvalidYearPolicy(c.Browse.InvalidYear); err != nil {
		return fmt.Errorf("browse.invalid_year: %w", err)
	}
	if c.UI.GridColumns < 1 {
		c.UI.GridColumns = 1
	}
	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("catalog.refresh_interval must not be negative")
	}
	return nil
}

// BrowseOptions converts the browse section into session options
func (c *Config) BrowseOptions() browse.Options {
	mode, _ := browse.ParseMode(c.Browse.FilterMode)
	policy, _ := browse.ParseInvalidYearPolicy(c.Browse.InvalidYear)
	return browse.Options{Mode: mode, InvalidYear: policy}
}

// SaveConfig saves the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, defaultConfigPath())
}

// SaveConfigTo saves the configuration as config.yaml in configDir
func SaveConfigTo(cfg *Config, configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setValues(v.Set, cfg)

	configFile := filepath.Join(configDir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// ClearCache removes all cached data under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
