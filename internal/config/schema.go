package config

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where the network is saved and loaded
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, sqlite
	Format  string `yaml:"format"`  // csv, json, yaml (file backend only)
	Path    string `yaml:"path"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}
