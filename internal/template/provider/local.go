package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/schema"
	"github.com/skaffio/skaff/internal/template/model"
)

// LocalProvider implements Provider for templates on the local filesystem.
type LocalProvider struct {
	// BaseDir is the base directory for resolving relative paths.
	// If empty, the current working directory is used.
	BaseDir string
}

// NewLocalProvider creates a local filesystem provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// NewLocalProviderWithBase creates a local provider rooted at baseDir.
func NewLocalProviderWithBase(baseDir string) *LocalProvider {
	return &LocalProvider{BaseDir: baseDir}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Resolve converts a local path or file:// URL to a TemplateRef.
func (p *LocalProvider) Resolve(source string) (model.TemplateRef, error) {
	debug.Debug("[local] Resolving source: %s", source)

	path := source
	if strings.HasPrefix(source, "file://") {
		parsed, err := ParseFileSource(source)
		if err != nil {
			return model.TemplateRef{}, sourceError(p.Name(), source, err)
		}
		path = parsed
	}

	absPath, err := p.resolvePath(path)
	if err != nil {
		debug.Debug("[local] Resolve failed: %v", err)
		return model.TemplateRef{}, sourceError(p.Name(), source, err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return model.TemplateRef{}, notFoundError(p.Name(), source)
		}
		return model.TemplateRef{}, fetchError(p.Name(), source, err)
	}

	debug.Debug("[local] Resolved to: %s", absPath)
	return model.TemplateRef{
		Provider: "local",
		Path:     absPath,
	}, nil
}

// Validate checks that the referenced directory exists and carries a manifest.
func (p *LocalProvider) Validate(ctx context.Context, ref model.TemplateRef) error {
	debug.Debug("[local] Validating: %s", ref.Path)

	if ref.Provider != "local" {
		return sourceError(p.Name(), ref.Path,
			fmt.Errorf("expected provider 'local', got '%s'", ref.Provider))
	}

	info, err := os.Stat(ref.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return notFoundError(p.Name(), ref.Path)
		}
		return fetchError(p.Name(), ref.Path, err)
	}
	if !info.IsDir() {
		return templateError(p.Name(), ref.Path, "template path must be a directory", nil)
	}

	manifestPath := filepath.Join(ref.Path, schema.ManifestFileName)
	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return templateError(p.Name(), ref.Path,
				schema.ManifestFileName+" not found in template directory", nil)
		}
		return fetchError(p.Name(), ref.Path, err)
	}
	return nil
}

// Fetch loads the template tree from the local filesystem.
func (p *LocalProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*model.Template, error) {
	debug.Debug("[local] Fetching: %s", ref.Path)

	if err := p.Validate(ctx, ref); err != nil {
		return nil, err
	}

	manifest, err := loadManifest(ref.Path)
	if err != nil {
		return nil, templateError(p.Name(), ref.Path, "invalid template manifest", err)
	}

	files, err := collectFiles(ref.Path)
	if err != nil {
		return nil, fetchError(p.Name(), ref.Path, err)
	}

	return &model.Template{
		Ref:      ref,
		Manifest: manifest,
		Files:    files,
		RootPath: ref.Path,
	}, nil
}

// resolvePath turns a possibly relative path into a cleaned absolute path,
// resolving against BaseDir (or the working directory) when relative.
func (p *LocalProvider) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	baseDir := p.BaseDir
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = cwd
	}
	return filepath.Clean(filepath.Join(baseDir, path)), nil
}
