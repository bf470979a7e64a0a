package provider

import (
	"fmt"
	"os"
)

// Config carries provider construction options.
type Config struct {
	// GitHubToken is an optional GitHub personal access token.
	GitHubToken string
	// BaseDir is the base directory for resolving relative local paths.
	BaseDir string
}

// NewProvider picks a provider for the given source string. Sources with
// local markers (./, ../, absolute paths, file://) get the local provider;
// everything else is treated as a GitHub coordinate.
func NewProvider(source string, cfg Config) (Provider, error) {
	if source == "" {
		return nil, fmt.Errorf("template source cannot be empty")
	}

	if IsLocalSource(source) {
		if cfg.BaseDir != "" {
			return NewLocalProviderWithBase(cfg.BaseDir), nil
		}
		return NewLocalProvider(), nil
	}

	token := cfg.GitHubToken
	if token == "" {
		token = GitHubTokenFromEnv()
	}
	if token != "" {
		return NewGitHubProviderWithToken(token), nil
	}
	return NewGitHubProvider(), nil
}

// GitHubTokenFromEnv reads a GitHub token from the environment, preferring
// SKAFF_GITHUB_TOKEN, then GITHUB_TOKEN, then GH_TOKEN.
func GitHubTokenFromEnv() string {
	for _, name := range []string{"SKAFF_GITHUB_TOKEN", "GITHUB_TOKEN", "GH_TOKEN"} {
		if token := os.Getenv(name); token != "" {
			return token
		}
	}
	return ""
}
