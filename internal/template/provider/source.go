package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skaffio/skaff/internal/template/model"
)

// DefaultRef is the git ref used when a GitHub source does not name one.
const DefaultRef = "main"

// ParseGitHubSource parses a GitHub source string into a TemplateRef.
// Supported formats:
//   - https://github.com/owner/repo
//   - https://github.com/owner/repo/tree/ref/sub/dir
//   - git@github.com:owner/repo.git
//   - github.com/owner/repo[/sub/dir]
//   - owner/repo[/sub/dir]
func ParseGitHubSource(source string) (*model.TemplateRef, error) {
	s := strings.TrimSpace(source)
	if s == "" {
		return nil, fmt.Errorf("template source cannot be empty")
	}

	if rest, ok := strings.CutPrefix(s, "git@github.com:"); ok {
		return parseOwnerRepoPath(strings.TrimSuffix(rest, ".git"))
	}

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")

	// /tree/<ref>/<path> URLs carry an explicit ref and subdirectory.
	if before, after, ok := strings.Cut(s, "/tree/"); ok {
		ref, err := parseOwnerRepoPath(before)
		if err != nil {
			return nil, err
		}
		gitRef, sub, _ := strings.Cut(after, "/")
		if gitRef == "" {
			return nil, fmt.Errorf("missing ref after /tree/ in source: %s", source)
		}
		ref.Ref = gitRef
		ref.Path = sub
		return ref, nil
	}

	return parseOwnerRepoPath(strings.TrimSuffix(s, ".git"))
}

// parseOwnerRepoPath parses "owner/repo" or "owner/repo/sub/dir".
func parseOwnerRepoPath(s string) (*model.TemplateRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("expected owner/repo format: %s", s)
	}

	ref := &model.TemplateRef{
		Provider: "github",
		Owner:    parts[0],
		Repo:     parts[1],
		Ref:      DefaultRef,
	}
	if len(parts) > 2 {
		ref.Path = strings.Join(parts[2:], "/")
	}
	return ref, nil
}

// IsLocalSource reports whether a source string refers to the local
// filesystem rather than a remote repository. Explicit markers win: "./",
// "../", an absolute path, or a file:// URL. Anything that looks like a
// GitHub coordinate is remote.
func IsLocalSource(source string) bool {
	if source == "" {
		return false
	}
	if strings.HasPrefix(source, "file://") {
		return true
	}
	if strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") {
		return true
	}
	if filepath.IsAbs(source) {
		return true
	}
	return false
}

// ParseFileSource extracts the filesystem path from a file:// URL.
func ParseFileSource(source string) (string, error) {
	path, ok := strings.CutPrefix(source, "file://")
	if !ok {
		return "", fmt.Errorf("not a file:// URL: %s", source)
	}
	if path == "" {
		return "", fmt.Errorf("empty path in file:// URL: %s", source)
	}
	return path, nil
}
