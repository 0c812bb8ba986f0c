package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all bburn configuration.
type Config struct {
	General      GeneralConfig      `toml:"general"`
	Compensation CompensationConfig `toml:"compensation"`
	Appearance   AppearanceConfig   `toml:"appearance"`
	Daemon       DaemonConfig       `toml:"daemon"`
	TUI          TUIConfig          `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultYear    int    `toml:"default_year,omitempty"`
	CategoriesFile string `toml:"categories_file,omitempty"`
	DBPath         string `toml:"db_path,omitempty"`
}

// CompensationConfig names the categories the runway projector tracks.
type CompensationConfig struct {
	CategoryIDs []string `toml:"category_ids"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds settings for the background snapshot service.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Compensation: CompensationConfig{
			CategoryIDs: []string{"salaries", "payroll-taxes", "benefits"},
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  60,
			EventsBuffer: 200,
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 30,
		},
	}
}

// Year returns the configured default year, or the current calendar year.
func (c Config) Year(now time.Time) int {
	if c.General.DefaultYear > 0 {
		return c.General.DefaultYear
	}
	return now.Year()
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bburn")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "bburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "bburn")
}

// DBPath resolves the database location: BBURN_DB, then the config file, then
// the data directory.
func DBPath(cfg Config) string {
	if p := os.Getenv("BBURN_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "bburn.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path with owner-only permissions.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFrom
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
