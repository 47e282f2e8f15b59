package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath names an explicit config file. It wins over every other location.
const EnvConfigPath = "PIPENET_CONFIG"

// ConfigFileName is looked up in the working directory.
const ConfigFileName = "pipenet.yaml"

// SearchPaths lists the config locations in lookup order. Locations whose
// environment variable is unset are left out.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "pipenet", "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", "pipenet", "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", "pipenet", "config.yaml"))
}

// FindConfigPath returns the absolute path of the first existing config
// file, or "" when there is none.
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// resolveStoragePath anchors a relative storage path at the directory of the
// config file that named it. Empty and absolute paths are returned unchanged.
func resolveStoragePath(storagePath, configPath string) string {
	if storagePath == "" || filepath.IsAbs(storagePath) || configPath == "" {
		return storagePath
	}
	return filepath.Join(filepath.Dir(configPath), storagePath)
}
