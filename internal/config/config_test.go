package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Storage.Backend = %s, want %s", cfg.Storage.Backend, BackendFile)
	}
	if cfg.Storage.Path == "" {
		t.Error("Storage.Path should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name       string
		storage    StorageConfig
		wantFormat string
		wantPath   string
	}{
		{"empty", StorageConfig{}, "csv", "./network.csv"},
		{"format from path", StorageConfig{Path: "/data/net.yml"}, "yaml", "/data/net.yml"},
		{"path from format", StorageConfig{Format: "json"}, "json", "./network.json"},
		{"sqlite path", StorageConfig{Backend: BackendSQLite}, "csv", "./pipenet.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Storage: tt.storage}
			cfg.applyDefaults()

			if cfg.Storage.Format != tt.wantFormat {
				t.Errorf("Format = %s, want %s", cfg.Storage.Format, tt.wantFormat)
			}
			if cfg.Storage.Path != tt.wantPath {
				t.Errorf("Path = %s, want %s", cfg.Storage.Path, tt.wantPath)
			}
			if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
				t.Errorf("Log = %+v, want info/text", cfg.Log)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid sqlite", func(c *Config) { c.Storage.Backend = BackendSQLite; c.Storage.Format = "bin" }, ""},
		{"bad backend", func(c *Config) { c.Storage.Backend = "postgres" }, "invalid storage backend"},
		{"bad format", func(c *Config) { c.Storage.Format = "xml" }, "invalid storage format"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "/var/lib/pipenet/pipenet.db"
	cfg.Log.Level = "debug"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Storage != cfg.Storage {
		t.Errorf("Storage = %+v, want %+v", loaded.Storage, cfg.Storage)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", loaded.Log.Level)
	}
	if !strings.Contains(loaded.Summary(), "sqlite /var/lib/pipenet/pipenet.db") {
		t.Errorf("Summary() = %q", loaded.Summary())
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, _, err := LoadFromPath(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	broken := filepath.Join(tmpDir, "broken.yaml")
	os.WriteFile(broken, []byte("storage: [unterminated"), 0644)
	if _, _, err := LoadFromPath(broken); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	os.WriteFile(invalid, []byte("storage:\n  backend: tape\n"), 0644)
	if _, _, err := LoadFromPath(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Should find config in working directory
	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	// Existing explicit path wins
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found = FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/op")

	want := []string{
		ConfigFileName,
		"/xdg/pipenet/config.yaml",
		"/home/op/.config/pipenet/config.yaml",
		"/etc/pipenet/config.yaml",
	}
	got := SearchPaths()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}

	t.Setenv(EnvConfigPath, "/explicit.yaml")
	if got := SearchPaths(); got[0] != "/explicit.yaml" {
		t.Errorf("SearchPaths()[0] = %s, want /explicit.yaml", got[0])
	}
}

func TestLoadResolvesStoragePathAgainstConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		storage string
		want    func(dir string) string
	}{
		{"relative", "storage:\n  path: data/net.json\n", func(dir string) string { return filepath.Join(dir, "data", "net.json") }},
		{"dot relative", "storage:\n  path: ./net.csv\n", func(dir string) string { return filepath.Join(dir, "net.csv") }},
		{"absolute", "storage:\n  path: /srv/net.yaml\n", func(string) string { return "/srv/net.yaml" }},
		{"default", "version: 1\n", func(string) string { return "./network.csv" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "etc", "pipenet")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(path, []byte(tt.storage), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, _, err := LoadFromPath(path)
			if err != nil {
				t.Fatalf("LoadFromPath() error: %v", err)
			}
			if want := tt.want(dir); cfg.Storage.Path != want {
				t.Errorf("Storage.Path = %s, want %s", cfg.Storage.Path, want)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name        string
		overrides   Overrides
		wantBackend string
		wantFormat  string
		wantPath    string
		wantErr     bool
	}{
		{"none", Overrides{}, BackendFile, "csv", "./network.csv", false},
		{"path infers format", Overrides{Path: "/tmp/net.json"}, BackendFile, "json", "/tmp/net.json", false},
		{"explicit format wins", Overrides{Path: "/tmp/net.txt", Format: "yaml"}, BackendFile, "yaml", "/tmp/net.txt", false},
		{"sqlite default path", Overrides{Backend: BackendSQLite}, BackendSQLite, "csv", "./pipenet.db", false},
		{"unknown backend", Overrides{Backend: "redis"}, "", "", "", true},
		{"bad level", Overrides{LogLevel: "loud"}, "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Apply(tt.overrides)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if cfg.Storage.Backend != tt.wantBackend {
				t.Errorf("Backend = %s, want %s", cfg.Storage.Backend, tt.wantBackend)
			}
			if cfg.Storage.Format != tt.wantFormat {
				t.Errorf("Format = %s, want %s", cfg.Storage.Format, tt.wantFormat)
			}
			if cfg.Storage.Path != tt.wantPath {
				t.Errorf("Path = %s, want %s", cfg.Storage.Path, tt.wantPath)
			}
		})
	}
}
