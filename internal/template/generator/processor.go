package generator

import (
	"context"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/template/model"
	"github.com/skaffio/skaff/internal/template/render"
)

// Processor turns one included template file into a rendered output file.
type Processor interface {
	// Process renders a single file against the resolved variables.
	// Binary files are passed through unmodified.
	Process(ctx context.Context, file model.TemplateFile, vars render.Variables) (*model.RenderedFile, []render.Warning, error)

	// ShouldRender reports whether the file's content will be evaluated.
	ShouldRender(file model.TemplateFile) bool
}

// FileProcessor implements Processor.
type FileProcessor struct {
	renderer         render.Renderer
	binaryExtensions []string
}

// NewFileProcessor creates a FileProcessor. binaryExtensions extends the
// built-in binary extension denylist.
func NewFileProcessor(r render.Renderer, binaryExtensions []string) *FileProcessor {
	return &FileProcessor{
		renderer:         r,
		binaryExtensions: binaryExtensions,
	}
}

// ShouldRender reports whether the file's content will be evaluated.
func (p *FileProcessor) ShouldRender(file model.TemplateFile) bool {
	if file.IsBinary {
		return false
	}
	return !IsBinary(file.Path, file.Content, p.binaryExtensions)
}

// Process renders a single file against the resolved variables.
func (p *FileProcessor) Process(ctx context.Context, file model.TemplateFile, vars render.Variables) (*model.RenderedFile, []render.Warning, error) {
	if !p.ShouldRender(file) {
		debug.Debug("[generator] Passing through binary file: %s (%d bytes)", file.Path, len(file.Content))
		return &model.RenderedFile{
			Path:     file.Path,
			Content:  file.Content,
			Mode:     file.Mode,
			IsBinary: true,
		}, nil, nil
	}

	content, warnings, err := p.renderer.RenderFile(ctx, file.Path, file.Content, vars)
	if err != nil {
		return nil, warnings, newError(RenderFailed, "failed to render template", file.Path, err)
	}

	return &model.RenderedFile{
		Path:     file.Path,
		Content:  content,
		Mode:     file.Mode,
		Rendered: true,
	}, warnings, nil
}
