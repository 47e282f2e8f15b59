// Package config provides configuration management for pipenet.
//
// Config file locations (priority order):
//  1. $PIPENET_CONFIG
//  2. ./pipenet.yaml
//  3. $XDG_CONFIG_HOME/pipenet/config.yaml
//  4. ~/.config/pipenet/config.yaml
//  5. /etc/pipenet/config.yaml
//
// A relative storage.path is read relative to the config file's directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	// Relative storage paths belong to the config file, not the caller's cwd.
	cfg.Storage.Path = resolveStoragePath(cfg.Storage.Path, path)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Backend: BackendFile,
			Format:  "csv",
			Path:    "./network.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Overrides carries command-line values that take precedence over the file.
// Empty fields leave the loaded value untouched.
type Overrides struct {
	Backend  string
	Format   string
	Path     string
	LogLevel string
}

// Apply merges o into c and validates the result. A new path without an
// explicit format re-derives the format from the file extension.
func (c *Config) Apply(o Overrides) error {
	if o.Backend != "" && o.Backend != c.Storage.Backend {
		c.Storage.Backend = o.Backend
		if o.Path == "" {
			c.Storage.Path = ""
		}
	}
	if o.Path != "" {
		c.Storage.Path = o.Path
		if o.Format == "" {
			c.Storage.Format = ""
		}
	}
	if o.Format != "" {
		c.Storage.Format = o.Format
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	c.applyDefaults()
	return c.Validate()
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.Format == "" {
		c.Storage.Format = formatFromPath(c.Storage.Path, def.Storage.Format)
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			c.Storage.Path = "./pipenet.db"
		default:
			c.Storage.Path = "./network." + c.Storage.Format
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate rejects unknown backends, formats and log settings
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend %q: must be %q or %q", c.Storage.Backend, BackendFile, BackendSQLite)
	}

	if c.Storage.Backend == BackendFile {
		switch c.Storage.Format {
		case "csv", "json", "yaml":
		default:
			return fmt.Errorf("invalid storage format %q: must be csv, json or yaml", c.Storage.Format)
		}
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}

	return nil
}

// ParseLevel converts a level name to a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	if c.Storage.Backend == BackendSQLite {
		return fmt.Sprintf("Storage: sqlite %s, Log: %s/%s", c.Storage.Path, c.Log.Level, c.Log.Format)
	}
	return fmt.Sprintf("Storage: %s file %s, Log: %s/%s", c.Storage.Format, c.Storage.Path, c.Log.Level, c.Log.Format)
}

// formatFromPath guesses a file format from its extension
func formatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".csv", ".txt":
		return "csv"
	}
	return fallback
}
