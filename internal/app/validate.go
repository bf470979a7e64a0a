package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/schema"
	"github.com/skaffio/skaff/internal/template/generator"
	"github.com/skaffio/skaff/internal/template/provider"
	"github.com/skaffio/skaff/internal/template/render"
)

// ValidateOptions configures one validate run.
type ValidateOptions struct {
	// Dir is the template directory to validate.
	Dir string
	// CheckTemplates additionally syntax-checks every renderable file.
	CheckTemplates bool
}

// ValidateResult reports everything found while validating a template
// directory.
type ValidateResult struct {
	// Manifest is the parsed manifest; nil when the file is missing or
	// has a syntax error.
	Manifest *schema.Manifest
	// Findings are manifest validation errors.
	Findings schema.ValidationErrors
	// TemplateIssues are template syntax errors found in files.
	TemplateIssues []*render.Error
	// FileCount is the number of files checked for syntax.
	FileCount int
}

// Valid reports whether the template passed with no findings.
func (r *ValidateResult) Valid() bool {
	return r.Manifest != nil && len(r.Findings) == 0 && len(r.TemplateIssues) == 0
}

// ValidateService validates template directories.
type ValidateService struct{}

// NewValidateService creates a ValidateService.
func NewValidateService() *ValidateService {
	return &ValidateService{}
}

// Validate checks a template directory: manifest syntax, manifest semantic
// rules, and optionally the template syntax of every renderable file. All
// findings are collected; only I/O problems or a missing/unparsable manifest
// abort the run early.
func (s *ValidateService) Validate(ctx context.Context, opts ValidateOptions) (*ValidateResult, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	manifestPath := filepath.Join(dir, schema.ManifestFileName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(InvalidInput,
				schema.ManifestFileName+" not found in "+dir, err)
		}
		return nil, newError(InvalidInput, "failed to read "+manifestPath, err)
	}

	result := &ValidateResult{}

	manifest, err := schema.Parse(data)
	if err != nil {
		// Syntax errors stop everything: there is no manifest to check.
		return nil, newError(ManifestInvalid, "manifest syntax error", err)
	}
	result.Manifest = manifest

	if err := schema.Validate(manifest); err != nil {
		var findings schema.ValidationErrors
		if errors.As(err, &findings) {
			result.Findings = findings
		} else {
			return nil, newError(ManifestInvalid, "manifest validation failed", err)
		}
	}

	if opts.CheckTemplates {
		if err := s.checkTemplates(ctx, dir, manifest, result); err != nil {
			return nil, err
		}
	}

	debug.Debug("[app] Validate done: %d finding(s), %d template issue(s)",
		len(result.Findings), len(result.TemplateIssues))
	return result, nil
}

// checkTemplates parses every included renderable file without evaluating.
func (s *ValidateService) checkTemplates(ctx context.Context, dir string, manifest *schema.Manifest, result *ValidateResult) error {
	prov := provider.NewLocalProvider()
	ref, err := prov.Resolve(dir)
	if err != nil {
		return newError(InvalidInput, "failed to resolve template directory", err)
	}
	tmpl, err := prov.Fetch(ctx, ref)
	if err != nil {
		// A manifest with findings still fails provider-side validation;
		// fall back to reporting the findings alone.
		debug.Debug("[app] Skipping template syntax check: %v", err)
		return nil
	}

	renderer := render.NewRenderer()
	for _, file := range tmpl.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !generator.Included(manifest.Files, file.Path) || file.IsBinary {
			continue
		}
		result.FileCount++
		if err := renderer.Validate(file.Content); err != nil {
			var rerr *render.Error
			if errors.As(err, &rerr) {
				rerr.File = file.Path
				result.TemplateIssues = append(result.TemplateIssues, rerr)
			}
		}
	}
	return nil
}
