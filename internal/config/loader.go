package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/skaffio/skaff/internal/debug"
)

// Loader loads configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration, or returns defaults when the
	// file does not exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate checks configuration values.
	Validate(cfg *Config) error
}

// FileLoader implements Loader for JSON configuration files.
type FileLoader struct{}

// NewLoader creates a FileLoader.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path. Fields absent from
// the file keep their default values.
func (l *FileLoader) Load(path string) (*Config, error) {
	debug.Debug("[config] Loading configuration from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(NotFound, path, "configuration file not found", err)
		}
		return nil, newError(Invalid, path, "failed to read configuration file", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, newError(Invalid, path, "invalid JSON syntax", err)
	}

	if err := l.Validate(cfg); err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) {
			cfgErr.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration, or returns defaults when the file does
// not exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) && cfgErr.Type == NotFound {
			debug.Debug("[config] No configuration file, using defaults")
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration values.
func (l *FileLoader) Validate(cfg *Config) error {
	if cfg.Cache.TTLSeconds < 0 {
		return newFieldError("cache.ttl_seconds", "TTL cannot be negative")
	}
	if cfg.GitHub.TimeoutSeconds < 0 {
		return newFieldError("github.timeout_seconds", "timeout cannot be negative")
	}
	if cfg.Render.MaxOutputBytes < 0 {
		return newFieldError("render.max_output_bytes", "budget cannot be negative")
	}
	if cfg.Render.MaxIterations < 0 {
		return newFieldError("render.max_iterations", "budget cannot be negative")
	}
	return nil
}

// Save writes configuration to the specified file path, creating parent
// directories as needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return newError(Invalid, path, "failed to create configuration directory", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return newError(Invalid, path, "failed to encode configuration", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return newError(Invalid, path, "failed to write configuration file", err)
	}
	return nil
}

// CacheDir returns the effective cache directory for the configuration.
func (c *Config) CacheDir() string {
	if c.Cache.Directory != "" {
		return c.Cache.Directory
	}
	return DefaultCacheDir()
}
