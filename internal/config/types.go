// Package config loads and validates the user-level skaff configuration
// file. All settings are optional; missing fields fall back to defaults.
package config

// Config represents the global skaff configuration.
type Config struct {
	// Cache configures template discovery caching.
	Cache CacheConfig `json:"cache"`
	// GitHub configures repository access.
	GitHub GitHubConfig `json:"github"`
	// Render configures template rendering.
	Render RenderConfig `json:"render"`
	// Output configures display behavior.
	Output OutputConfig `json:"output"`
	// Defaults configures fallback values for prompts and flags.
	Defaults DefaultsConfig `json:"defaults"`
}

// CacheConfig represents discovery cache settings.
type CacheConfig struct {
	// Enabled indicates whether discovery results are cached.
	Enabled bool `json:"enabled"`
	// Directory is the cache directory path. Empty means the platform
	// cache directory plus "skaff".
	Directory string `json:"directory,omitempty"`
	// TTLSeconds is how long cached discovery results stay fresh.
	TTLSeconds int `json:"ttl_seconds"`
}

// GitHubConfig represents GitHub access settings.
type GitHubConfig struct {
	// Token is a personal access token for private repositories and
	// higher API rate limits.
	Token string `json:"token,omitempty"`
	// DefaultRef is the git ref used when a source does not name one.
	DefaultRef string `json:"default_ref"`
	// TimeoutSeconds is the HTTP request timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// RenderConfig represents template rendering settings.
type RenderConfig struct {
	// StrictVars makes undefined variable references fatal.
	StrictVars bool `json:"strict_vars"`
	// PreserveExecutable carries the executable bit from template files.
	PreserveExecutable bool `json:"preserve_executable"`
	// BinaryExtensions extends the built-in binary extension denylist.
	BinaryExtensions []string `json:"binary_extensions,omitempty"`
	// MaxOutputBytes is the per-file rendered size budget (0 = default).
	MaxOutputBytes int `json:"max_output_bytes,omitempty"`
	// MaxIterations is the per-file loop iteration budget (0 = default).
	MaxIterations int `json:"max_iterations,omitempty"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `json:"color"`
	// Verbose enables verbose output.
	Verbose bool `json:"verbose"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet"`
}

// DefaultsConfig represents fallback values for prompts and flags.
type DefaultsConfig struct {
	// Author is the default author name offered when a template asks
	// for one.
	Author string `json:"author,omitempty"`
	// OutputDir is the default output directory for skaff create.
	OutputDir string `json:"output_dir"`
}
