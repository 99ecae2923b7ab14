package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/engine"
)

// Config holds launcher configuration stored at ~/.launchgrid/config.yaml.
type Config struct {
	VimKeys bool          `yaml:"vim_keys"`
	Library LibraryConfig `yaml:"library"`
	Log     LogConfig     `yaml:"log"`
	Relay   RelayConfig   `yaml:"relay"`
	// Grid lengths are terminal cells.
	Grid engine.Config `yaml:"grid"`
}

// LibraryConfig locates the game library file.
type LibraryConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch"`
	// Emulator is the command that runs a game; the game path is appended.
	Emulator []string `yaml:"emulator,omitempty"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// RelayConfig configures the cross-window drag relay.
type RelayConfig struct {
	Enabled      bool          `yaml:"enabled"`
	URL          string        `yaml:"url"`
	Addr         string        `yaml:"addr"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Dir returns the config directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".launchgrid")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	grid := engine.DefaultConfig()
	grid.MinItemWidth = 22
	grid.RowHeight = 6
	grid.BufferRows = 2
	grid.BucketSize = 1
	grid.DragThreshold = 0.5

	return &Config{
		Library: LibraryConfig{Watch: true},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Relay: RelayConfig{
			Enabled:      true,
			URL:          "http://127.0.0.1:7431",
			Addr:         "127.0.0.1:7431",
			PollInterval: 500 * time.Millisecond,
		},
		Grid: grid,
	}
}

// Load reads and parses the config file on top of Default. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path := Path()
	cfg := Default()

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Relay.Enabled && c.Relay.URL == "" {
		return fmt.Errorf("relay.url is required when the relay is enabled")
	}
	if c.Relay.PollInterval < 0 {
		return fmt.Errorf("relay.poll_interval must not be negative")
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	return nil
}

// LibraryPath returns the configured library file or the default location.
func (c *Config) LibraryPath() string {
	if c.Library.Path != "" {
		return expandHome(c.Library.Path)
	}
	return filepath.Join(Dir(), "library.yaml")
}

// LogPath returns the configured log file or the default location.
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return expandHome(c.Log.Path)
	}
	return filepath.Join(Dir(), "launchgrid.log")
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
