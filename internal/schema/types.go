package schema

import "regexp"

// ManifestFileName is the template manifest file name in the template root.
const ManifestFileName = "skaff.toml"

// Limits applied during manifest validation.
const (
	// MaxNameLength is the maximum template name length.
	MaxNameLength = 100
	// MinDescriptionLength is the minimum template description length.
	MinDescriptionLength = 10
	// MaxDescriptionLength is the maximum template description length.
	MaxDescriptionLength = 200
	// MaxTags is the maximum number of tags a template may declare.
	MaxTags = 10
)

// TrustedRepositoryPrefix is the required prefix for template repository URLs.
// Templates are only accepted from HTTPS GitHub repositories.
const TrustedRepositoryPrefix = "https://github.com/"

// ReservedNames are built-in variable names that templates may not declare
// as parameters. They are always available during rendering.
var ReservedNames = []string{
	"project_name",
	"author",
	"version",
	"date",
	"timestamp",
}

// IsReservedName reports whether name is a reserved built-in variable name.
func IsReservedName(name string) bool {
	for _, r := range ReservedNames {
		if name == r {
			return true
		}
	}
	return false
}

// Manifest is a validated skaff.toml template manifest.
// It is parsed once per template instantiation and immutable thereafter.
type Manifest struct {
	// Template is the required metadata section.
	Template Metadata
	// Parameters maps parameter names to their specs (may be empty).
	Parameters map[string]ParameterSpec
	// Files holds the file inclusion/exclusion rules (may be empty).
	Files FileRules
}

// Metadata is the [template] section of skaff.toml.
type Metadata struct {
	// Name is the human-readable template name (required).
	Name string `toml:"name"`
	// Description is a one-line description of the template (required).
	Description string `toml:"description"`
	// Version is the template version, MAJOR.MINOR.PATCH (required).
	Version string `toml:"version"`
	// Authors lists the template authors/maintainers (required, non-empty).
	Authors []string `toml:"authors"`
	// Repository is the HTTPS GitHub repository URL (required).
	Repository string `toml:"repository"`
	// Tags are optional searchable tags (at most MaxTags).
	Tags []string `toml:"tags"`
	// MinToolVersion is the minimum skaff CLI version required (optional).
	MinToolVersion string `toml:"min_tool_version"`
	// MinRuntimeVersion is the minimum language runtime version required (optional).
	MinRuntimeVersion string `toml:"min_runtime_version"`
}

// ParamType identifies the parameter variant.
type ParamType string

const (
	// ParamString is a free-form string parameter with optional pattern validation.
	ParamString ParamType = "string"
	// ParamBoolean is a true/false parameter.
	ParamBoolean ParamType = "boolean"
	// ParamEnum is a parameter restricted to a fixed set of choices.
	ParamEnum ParamType = "enum"
)

// ParameterSpec describes a single template parameter.
// The variant is decided at parse time from the "type" discriminant field,
// never by probing the default value at runtime.
type ParameterSpec struct {
	// Type is the parameter variant (string, boolean, or enum).
	Type ParamType
	// Default is the raw default value from the manifest. Its concrete type
	// is checked against Type during validation.
	Default any
	// Pattern is an optional validation regex (string parameters only).
	Pattern string
	// Choices are the allowed values (enum parameters only, at least two).
	Choices []string
	// Description is an optional human-readable description.
	Description string

	// compiled is the compiled Pattern, set during validation.
	compiled *regexp.Regexp
}

// DefaultString returns the default value in its string form, as used for
// parameter resolution and templating.
func (s *ParameterSpec) DefaultString() string {
	switch v := s.Default.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// PatternRegexp returns the compiled Pattern regex, or nil if the parameter
// has no pattern or the manifest has not been validated yet.
func (s *ParameterSpec) PatternRegexp() *regexp.Regexp {
	return s.compiled
}

// FileRules is the [files] section of skaff.toml.
// An empty Include means "all files not excluded". Exclude always wins over
// Include on the same path.
type FileRules struct {
	// Include are glob patterns of files to include.
	Include []string `toml:"include"`
	// Exclude are glob patterns of files to exclude.
	Exclude []string `toml:"exclude"`
}
