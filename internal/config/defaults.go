package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
		},
		GitHub: GitHubConfig{
			DefaultRef:     "main",
			TimeoutSeconds: 30,
		},
		Render: RenderConfig{
			PreserveExecutable: true,
		},
		Output: OutputConfig{
			Color: true,
		},
		Defaults: DefaultsConfig{
			OutputDir: ".",
		},
	}
}

// DefaultConfigPath returns the default configuration file path,
// ~/.config/skaff/config.json. Returns empty if the home directory cannot
// be determined.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "skaff", "config.json")
}

// DefaultCacheDir returns the platform cache directory for skaff. Returns
// empty if it cannot be determined.
func DefaultCacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cacheDir, "skaff")
}
