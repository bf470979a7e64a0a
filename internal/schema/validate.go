package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/skaffio/skaff/internal/debug"
)

// Validate checks a parsed Manifest against the schema rules.
//
// All field-level errors are accumulated and returned as a single
// ValidationErrors batch (never failing on the first finding). A nil return
// means the manifest is valid; compiled parameter patterns are stored on the
// specs as a side effect so resolution can reuse them.
func Validate(m *Manifest) error {
	var errs ValidationErrors

	errs = append(errs, validateMetadata(&m.Template)...)
	errs = append(errs, validateParameters(m)...)
	errs = append(errs, validateFileRules(&m.Files)...)

	if len(errs) > 0 {
		debug.Debug("[schema] Validation failed with %d error(s)", len(errs))
		return errs
	}
	debug.Debug("[schema] Manifest %q validated", m.Template.Name)
	return nil
}

// validateMetadata checks the required [template] section.
func validateMetadata(meta *Metadata) ValidationErrors {
	var errs ValidationErrors

	if meta.Name == "" {
		errs = append(errs, newErrorWithSuggestion("template.name",
			"template name is required",
			"add name = \"...\" to the [template] section"))
	} else if len(meta.Name) > MaxNameLength {
		errs = append(errs, newError("template.name",
			fmt.Sprintf("template name must be %d characters or less", MaxNameLength)))
	}

	if meta.Description == "" {
		errs = append(errs, newErrorWithSuggestion("template.description",
			"template description is required",
			"add description = \"...\" to the [template] section"))
	} else if len(meta.Description) < MinDescriptionLength || len(meta.Description) > MaxDescriptionLength {
		errs = append(errs, newError("template.description",
			fmt.Sprintf("description must be %d-%d characters", MinDescriptionLength, MaxDescriptionLength)))
	}

	if meta.Version == "" {
		errs = append(errs, newErrorWithSuggestion("template.version",
			"template version is required",
			"use semantic versioning, e.g. version = \"1.0.0\""))
	} else if _, err := semver.StrictNewVersion(meta.Version); err != nil {
		errs = append(errs, newErrorWithSuggestion("template.version",
			fmt.Sprintf("version must be MAJOR.MINOR.PATCH: %v", err),
			"use semantic versioning, e.g. version = \"1.0.0\""))
	}

	if len(meta.Authors) == 0 {
		errs = append(errs, newErrorWithSuggestion("template.authors",
			"at least one author is required",
			"add authors = [\"Name <email>\"] to the [template] section"))
	} else {
		for i, author := range meta.Authors {
			if strings.TrimSpace(author) == "" {
				errs = append(errs, newError(fmt.Sprintf("template.authors[%d]", i),
					"author entry must not be empty"))
			}
		}
	}

	if meta.Repository == "" {
		errs = append(errs, newErrorWithSuggestion("template.repository",
			"template repository is required",
			"add repository = \"https://github.com/owner/repo\""))
	} else if !strings.HasPrefix(meta.Repository, TrustedRepositoryPrefix) {
		errs = append(errs, newErrorWithSuggestion("template.repository",
			"repository must be an HTTPS GitHub URL",
			"use the form https://github.com/owner/repo"))
	}

	if len(meta.Tags) > MaxTags {
		errs = append(errs, newError("template.tags",
			fmt.Sprintf("at most %d tags are allowed, got %d", MaxTags, len(meta.Tags))))
	}

	if meta.MinToolVersion != "" {
		if _, err := semver.StrictNewVersion(meta.MinToolVersion); err != nil {
			errs = append(errs, newError("template.min_tool_version",
				fmt.Sprintf("must be a semantic version: %v", err)))
		}
	}
	if meta.MinRuntimeVersion != "" {
		if _, err := semver.StrictNewVersion(meta.MinRuntimeVersion); err != nil {
			errs = append(errs, newError("template.min_runtime_version",
				fmt.Sprintf("must be a semantic version: %v", err)))
		}
	}

	return errs
}

// validateParameters checks every declared parameter spec.
func validateParameters(m *Manifest) ValidationErrors {
	var errs ValidationErrors

	// Sort names so error order is deterministic.
	names := make([]string, 0, len(m.Parameters))
	for name := range m.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := m.Parameters[name]
		field := "parameters." + name

		if IsReservedName(name) {
			errs = append(errs, newErrorWithSuggestion(field,
				fmt.Sprintf("parameter name %q collides with a reserved built-in variable", name),
				"rename the parameter; built-ins are always available without declaration"))
		}

		specErrs := validateParameterSpec(field, &spec)
		errs = append(errs, specErrs...)
		// Store back so compiled patterns survive.
		m.Parameters[name] = spec
	}

	return errs
}

// validateParameterSpec checks a single spec and compiles its pattern.
func validateParameterSpec(field string, spec *ParameterSpec) ValidationErrors {
	var errs ValidationErrors

	switch spec.Type {
	case ParamString:
		def, ok := spec.Default.(string)
		if !ok {
			errs = append(errs, newErrorWithSuggestion(field+".default",
				"string parameter requires a string default",
				"add default = \"...\" to the parameter table"))
		}
		if spec.Pattern != "" {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				errs = append(errs, newError(field+".pattern",
					fmt.Sprintf("invalid regex: %v", err)))
			} else {
				spec.compiled = re
				if ok && !re.MatchString(def) {
					errs = append(errs, newError(field+".default",
						fmt.Sprintf("default %q does not match pattern %q", def, spec.Pattern)))
				}
			}
		}
		if len(spec.Choices) > 0 {
			errs = append(errs, newError(field+".enum",
				"enum choices are only valid for enum parameters"))
		}

	case ParamBoolean:
		if _, ok := spec.Default.(bool); !ok {
			errs = append(errs, newErrorWithSuggestion(field+".default",
				"boolean parameter requires a true/false default",
				"add default = true or default = false"))
		}
		if spec.Pattern != "" {
			errs = append(errs, newError(field+".pattern",
				"pattern is only valid for string parameters"))
		}

	case ParamEnum:
		if len(spec.Choices) < 2 {
			errs = append(errs, newErrorWithSuggestion(field+".enum",
				"enum parameter requires at least two choices",
				"add enum = [\"a\", \"b\"] to the parameter table"))
		}
		seen := make(map[string]bool, len(spec.Choices))
		for i, choice := range spec.Choices {
			if seen[choice] {
				errs = append(errs, newError(fmt.Sprintf("%s.enum[%d]", field, i),
					fmt.Sprintf("duplicate choice %q", choice)))
			}
			seen[choice] = true
		}
		def, ok := spec.Default.(string)
		if !ok {
			errs = append(errs, newError(field+".default",
				"enum parameter requires a string default"))
		} else if len(spec.Choices) > 0 && !seen[def] {
			errs = append(errs, newError(field+".default",
				fmt.Sprintf("default %q is not one of the enum choices", def)))
		}
		if spec.Pattern != "" {
			errs = append(errs, newError(field+".pattern",
				"pattern is only valid for string parameters"))
		}

	case "":
		errs = append(errs, newErrorWithSuggestion(field+".type",
			"parameter type is required",
			"set type to \"string\", \"boolean\", or \"enum\""))

	default:
		errs = append(errs, newErrorWithSuggestion(field+".type",
			fmt.Sprintf("unknown parameter type %q", string(spec.Type)),
			"valid types are \"string\", \"boolean\", and \"enum\""))
	}

	return errs
}

// validateFileRules checks glob pattern syntax in the [files] section.
// Invalid globs are manifest-validation failures, never deferred to render time.
func validateFileRules(rules *FileRules) ValidationErrors {
	var errs ValidationErrors

	check := func(kind string, patterns []string) {
		for i, pattern := range patterns {
			field := fmt.Sprintf("files.%s[%d]", kind, i)
			if pattern == "" {
				errs = append(errs, newError(field, "glob pattern must not be empty"))
				continue
			}
			if !doublestar.ValidatePattern(pattern) {
				errs = append(errs, newErrorWithSuggestion(field,
					fmt.Sprintf("invalid glob pattern %q", pattern),
					"use *, **, and ? wildcards with balanced brackets"))
			}
		}
	}

	check("include", rules.Include)
	check("exclude", rules.Exclude)

	return errs
}
