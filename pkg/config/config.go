// Package config handles loading and saving lifeos configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/lifeos/config.yaml
//   - Data:    ~/.local/share/lifeos/ (the SQLite database lives here)
//   - State:   ~/.local/state/lifeos/ (view state cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultPane string `yaml:"default_pane,omitempty"` // launcher, tasks, household, health, finance, chat, feed, settings
	Theme       string `yaml:"theme,omitempty"`        // dark, light, auto
	CompactRows bool   `yaml:"compact_rows,omitempty"`
}

// LauncherConfig controls the app launcher.
type LauncherConfig struct {
	// Order lists app ids in the user's preferred order. Apps not named
	// here sort after the ordered ones, alphabetically by title.
	Order []string `yaml:"order,omitempty"`
	// Hidden lists app ids removed from the grid.
	Hidden []string `yaml:"hidden,omitempty"`
}

// Config is the top-level configuration for lifeos.
type Config struct {
	// DatabasePath overrides the default database location.
	DatabasePath string         `yaml:"database_path,omitempty"`
	UI           UIConfig       `yaml:"ui,omitempty"`
	Launcher     LauncherConfig `yaml:"launcher,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			DefaultPane: "launcher",
			Theme:       "auto",
		},
	}
}

// ConfigDir returns the XDG config directory for lifeos.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lifeos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lifeos")
}

// DataDir returns the XDG data directory for lifeos.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "lifeos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "lifeos")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultDatabasePath returns where the database lives when the config
// does not override it.
func DefaultDatabasePath() string {
	dir := DataDir()
	if dir == "" {
		return "lifeos.db"
	}
	return filepath.Join(dir, "lifeos.db")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	if cfg.UI.DefaultPane == "" {
		cfg.UI.DefaultPane = "launcher"
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ResolvedDatabasePath returns the configured database path, falling back
// to the XDG default.
func (c Config) ResolvedDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return DefaultDatabasePath()
}

// AppHidden reports whether the launcher hides the given app id.
func (c Config) AppHidden(id string) bool {
	for _, h := range c.Launcher.Hidden {
		if h == id {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
