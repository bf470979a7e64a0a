package model

import "github.com/skaffio/skaff/internal/schema"

// Template represents a fetched template with its validated manifest and
// all candidate files, ready for parameter resolution and rendering.
type Template struct {
	// Ref is the template reference (source location).
	Ref TemplateRef
	// Manifest is the parsed and validated skaff.toml.
	Manifest *schema.Manifest
	// Files are all candidate files (manifest excluded).
	Files []TemplateFile
	// RootPath is the local path to the template root directory, when the
	// template was fetched from disk ("" for in-memory sources).
	RootPath string
}
