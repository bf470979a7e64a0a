// Package app implements the skaff workflows behind the CLI commands:
// creating a project from a template, listing published templates, and
// validating a template directory.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/skaffio/skaff/internal/build"
	"github.com/skaffio/skaff/internal/config"
	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/params"
	"github.com/skaffio/skaff/internal/schema"
	"github.com/skaffio/skaff/internal/template/generator"
	"github.com/skaffio/skaff/internal/template/model"
	"github.com/skaffio/skaff/internal/template/provider"
	"github.com/skaffio/skaff/internal/template/render"
)

// PromptFunc fills in parameter values interactively. It receives the
// template manifest and the values already provided, and returns the
// complete user value set. A nil PromptFunc disables prompting.
type PromptFunc func(manifest *schema.Manifest, provided map[string]string) (map[string]string, error)

// CreateOptions configures one create run.
type CreateOptions struct {
	// Source is the template source (GitHub coordinate or local path).
	Source string
	// ProjectName is the name of the project to create.
	ProjectName string
	// OutputDir is the output directory. Empty means the configured
	// default output directory joined with the project name.
	OutputDir string
	// Ref overrides the git ref for GitHub sources.
	Ref string
	// Author is the author value exposed to templates.
	Author string
	// Params are user-provided parameter values.
	Params map[string]string
	// Prompt fills in missing parameters interactively; nil disables it.
	Prompt PromptFunc
	// Overwrite replaces existing files in the output directory.
	Overwrite bool
	// DryRun renders without writing anything.
	DryRun bool
	// FailFast stops rendering at the first file failure.
	FailFast bool
}

// CreateResult is the outcome of a create run.
type CreateResult struct {
	// ProjectName is the created project's name.
	ProjectName string
	// OutputDir is where files were (or would be) written.
	OutputDir string
	// Manifest is the template's validated manifest.
	Manifest *schema.Manifest
	// Files are the rendered output files.
	Files []model.RenderedFile
	// Warnings are non-fatal rendering findings.
	Warnings []render.Warning
	// Summary reports writes; nil on dry runs.
	Summary *generator.WriteSummary
}

// CreateService creates projects from templates.
type CreateService struct {
	cfg *config.Config
}

// NewCreateService creates a CreateService.
func NewCreateService(cfg *config.Config) *CreateService {
	return &CreateService{cfg: cfg}
}

// Create fetches a template, resolves its parameters, renders it and writes
// the result. The whole run is side-effect-free until every included file
// has rendered successfully.
func (s *CreateService) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	if opts.Source == "" {
		return nil, newError(InvalidInput, "template source is required", nil)
	}
	if opts.ProjectName == "" {
		return nil, newError(InvalidInput, "project name is required", nil)
	}

	tmpl, err := s.fetch(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := checkToolVersion(tmpl.Manifest.Template.MinToolVersion, build.Version()); err != nil {
		return nil, err
	}

	user := opts.Params
	if opts.Prompt != nil {
		user, err = opts.Prompt(tmpl.Manifest, user)
		if err != nil {
			return nil, newError(InvalidInput, "parameter prompt aborted", err)
		}
	}

	author := opts.Author
	if author == "" {
		author = s.cfg.Defaults.Author
	}
	resolved, err := params.Resolve(tmpl.Manifest, user, params.Context{
		ProjectName: opts.ProjectName,
		Author:      author,
		ToolVersion: build.Version(),
	}, time.Now())
	if err != nil {
		return nil, newError(ParamsInvalid, "parameter resolution failed", err)
	}

	pipeline := generator.NewPipeline(generator.Options{
		FailFast:         opts.FailFast,
		StrictVars:       s.cfg.Render.StrictVars,
		BinaryExtensions: s.cfg.Render.BinaryExtensions,
		MaxOutputBytes:   s.cfg.Render.MaxOutputBytes,
		MaxIterations:    s.cfg.Render.MaxIterations,
	})
	rendered, err := pipeline.Render(ctx, tmpl, resolved)
	if err != nil {
		return nil, newError(RenderFailed, "template rendering aborted", err)
	}
	if !rendered.Complete() {
		return nil, newError(RenderFailed,
			fmt.Sprintf("%d file(s) failed to render", len(rendered.Failures)),
			rendered.Failures[0])
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(s.cfg.Defaults.OutputDir, opts.ProjectName)
	}

	result := &CreateResult{
		ProjectName: opts.ProjectName,
		OutputDir:   outputDir,
		Manifest:    tmpl.Manifest,
		Files:       rendered.Files,
		Warnings:    rendered.Warnings,
	}

	if opts.DryRun {
		debug.Debug("[app] Dry run, skipping writes (%d file(s))", len(result.Files))
		return result, nil
	}

	writer := generator.NewFileWriter(s.cfg.Render.PreserveExecutable)
	summary, err := generator.WriteAll(writer, outputDir, rendered.Files, opts.Overwrite)
	if err != nil {
		return nil, newError(WriteFailed, "failed to write project files", err)
	}
	result.Summary = summary
	return result, nil
}

// fetch resolves the source to a provider and downloads the template.
func (s *CreateService) fetch(ctx context.Context, opts CreateOptions) (*model.Template, error) {
	prov, err := provider.NewProvider(opts.Source, provider.Config{
		GitHubToken: s.cfg.GitHub.Token,
	})
	if err != nil {
		return nil, newError(InvalidInput, "invalid template source", err)
	}
	debug.Debug("[app] Using %s provider for source: %s", prov.Name(), opts.Source)

	ref, err := prov.Resolve(opts.Source)
	if err != nil {
		return nil, newError(InvalidInput, "invalid template source", err)
	}
	if opts.Ref != "" && ref.Provider == "github" {
		ref.Ref = opts.Ref
	} else if ref.Provider == "github" && s.cfg.GitHub.DefaultRef != "" && ref.Ref == provider.DefaultRef {
		ref.Ref = s.cfg.GitHub.DefaultRef
	}

	tmpl, err := prov.Fetch(ctx, ref)
	if err != nil {
		return nil, newError(FetchFailed, "failed to fetch template", err)
	}
	return tmpl, nil
}
