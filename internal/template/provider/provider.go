// Package provider abstracts template source locations. A provider turns a
// user-supplied source string into a TemplateRef, checks that the referenced
// template exists, and fetches the template tree together with its parsed and
// validated manifest.
package provider

import (
	"context"

	"github.com/skaffio/skaff/internal/template/model"
)

// Provider abstracts template source locations (GitHub, local filesystem).
type Provider interface {
	// Resolve converts a source string to a TemplateRef. The accepted
	// format depends on the provider (GitHub URL, local path).
	Resolve(source string) (model.TemplateRef, error)

	// Validate checks that a template reference is valid and accessible
	// without fetching the whole template.
	Validate(ctx context.Context, ref model.TemplateRef) error

	// Fetch retrieves the template tree. The returned Template carries a
	// parsed and validated manifest; a template whose manifest fails
	// validation is rejected here, before any rendering happens.
	Fetch(ctx context.Context, ref model.TemplateRef) (*model.Template, error)

	// Name returns the provider name ("github", "local").
	Name() string
}
