// Package generator orchestrates manifest file rules and the template
// renderer over a fetched template tree, producing rendered output buffers
// plus per-file diagnostics. Writing the buffers to disk is the caller's
// concern (see Writer).
package generator

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/template/model"
	"github.com/skaffio/skaff/internal/template/render"
)

// Options configures the render pipeline.
type Options struct {
	// FailFast aborts the whole run on the first file-level failure instead
	// of continuing and reporting a partial result.
	FailFast bool
	// StrictVars makes undefined variable references fatal per file.
	StrictVars bool
	// BinaryExtensions extends the built-in binary extension denylist.
	BinaryExtensions []string
	// MaxOutputBytes is the per-file rendered size budget (0 = default).
	MaxOutputBytes int
	// MaxIterations is the per-file loop iteration budget (0 = default).
	MaxIterations int
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Files are the successfully produced output files, ordered by path.
	Files []model.RenderedFile
	// Warnings are non-fatal findings across all files.
	Warnings []render.Warning
	// Failures are per-file errors. Files that failed have no entry in Files.
	Failures []*Error
}

// Complete reports whether every included file rendered successfully, so
// callers can distinguish "fully rendered" from "rendered with failures"
// before writing anything to disk.
func (r *Result) Complete() bool {
	return len(r.Failures) == 0
}

// Pipeline renders a fetched template tree.
type Pipeline interface {
	// Render applies file rules and template rendering to every candidate
	// file. The returned error is non-nil only for invalid input or
	// cancellation; per-file failures are reported in the Result.
	Render(ctx context.Context, tmpl *model.Template, vars render.Variables) (*Result, error)
}

// DefaultPipeline implements Pipeline.
type DefaultPipeline struct {
	opts      Options
	processor Processor
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts Options) *DefaultPipeline {
	renderer := render.NewRendererWithOptions(render.Options{
		StrictVars:     opts.StrictVars,
		MaxOutputBytes: opts.MaxOutputBytes,
		MaxIterations:  opts.MaxIterations,
	})
	return &DefaultPipeline{
		opts:      opts,
		processor: NewFileProcessor(renderer, opts.BinaryExtensions),
	}
}

// Render applies file rules and template rendering to every candidate file.
func (p *DefaultPipeline) Render(ctx context.Context, tmpl *model.Template, vars render.Variables) (*Result, error) {
	if tmpl == nil || tmpl.Manifest == nil {
		return nil, fmt.Errorf("template with a validated manifest is required")
	}
	if vars == nil {
		return nil, fmt.Errorf("variables cannot be nil")
	}

	// Deterministic output order: re-rendering identical inputs must yield
	// identical results.
	files := make([]model.TemplateFile, len(tmpl.Files))
	copy(files, tmpl.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	debug.Debug("[generator] Pipeline start: %d candidate file(s), failFast=%v, strictVars=%v",
		len(files), p.opts.FailFast, p.opts.StrictVars)

	result := &Result{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !Included(tmpl.Manifest.Files, file.Path) {
			continue
		}

		safePath, err := safeRelPath(file.Path)
		if err != nil {
			failure := newError(PathError, "unsafe output path", file.Path, err)
			result.Failures = append(result.Failures, failure)
			if p.opts.FailFast {
				return result, nil
			}
			continue
		}

		rendered, warnings, perr := p.processor.Process(ctx, file, vars)
		result.Warnings = append(result.Warnings, warnings...)
		if perr != nil {
			var failure *Error
			if fe, ok := perr.(*Error); ok {
				failure = fe
			} else {
				failure = newError(RenderFailed, "failed to render template", file.Path, perr)
			}
			result.Failures = append(result.Failures, failure)
			if p.opts.FailFast {
				return result, nil
			}
			continue
		}

		rendered.Path = safePath
		result.Files = append(result.Files, *rendered)
	}

	debug.Debug("[generator] Pipeline done: %d file(s), %d warning(s), %d failure(s)",
		len(result.Files), len(result.Warnings), len(result.Failures))
	return result, nil
}

// safeRelPath normalizes a template-relative path and rejects anything that
// could escape the output root: absolute paths and ".." segments.
func safeRelPath(relPath string) (string, error) {
	slashed := strings.ReplaceAll(relPath, "\\", "/")
	if strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("absolute paths are not allowed: %s", relPath)
	}

	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("path escapes the template root: %s", relPath)
	}
	if clean == "." || clean == "" {
		return "", fmt.Errorf("empty path after normalization: %s", relPath)
	}
	return clean, nil
}
