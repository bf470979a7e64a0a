package model

import "os"

// TemplateRef represents a reference to a template source.
type TemplateRef struct {
	// Provider is the provider name (e.g., "github", "local").
	Provider string
	// Owner is the repository owner.
	Owner string
	// Repo is the repository name.
	Repo string
	// Path is the subdirectory path within the repository (optional).
	Path string
	// Ref is the branch, tag, or commit SHA.
	Ref string
}

// TemplateFile represents a single candidate file in a template tree.
type TemplateFile struct {
	// Path is the relative, slash-separated path from the template root.
	Path string
	// Content is the file content.
	Content []byte
	// Mode is the file permission mode.
	Mode os.FileMode
	// IsBinary indicates the file must be copied through without rendering.
	IsBinary bool
}

// RenderedFile is one output file produced by the render pipeline.
// The pipeline owns none of these past the call boundary; writing them to a
// filesystem is the caller's concern.
type RenderedFile struct {
	// Path is the normalized relative output path (no "..", never absolute).
	Path string
	// Content is the rendered text or the untouched binary content.
	Content []byte
	// Mode is the file permission mode carried over from the template.
	Mode os.FileMode
	// IsBinary indicates the content was copied through unmodified.
	IsBinary bool
	// Rendered indicates template evaluation was applied to the content.
	Rendered bool
}
