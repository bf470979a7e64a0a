package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/skaffio/skaff/internal/debug"
)

// rawManifest mirrors the on-disk TOML layout of skaff.toml.
type rawManifest struct {
	Template   Metadata                `toml:"template"`
	Parameters map[string]rawParameter `toml:"parameters"`
	Files      FileRules               `toml:"files"`
}

// rawParameter is a parameter table before the variant is decided.
// The "enum" key carries the choices list for enum parameters.
type rawParameter struct {
	Type        string   `toml:"type"`
	Default     any      `toml:"default"`
	Pattern     string   `toml:"pattern"`
	Enum        []string `toml:"enum"`
	Description string   `toml:"description"`
}

// Parse parses raw skaff.toml text into a Manifest.
//
// Parse fails fast on the first TOML syntax error; all field-level checks are
// deferred to Validate so they can be accumulated and reported together.
// The returned Manifest is NOT yet validated.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, syntaxError(err)
	}

	m := &Manifest{
		Template: raw.Template,
		Files:    raw.Files,
	}

	if len(raw.Parameters) > 0 {
		m.Parameters = make(map[string]ParameterSpec, len(raw.Parameters))
		for name, p := range raw.Parameters {
			m.Parameters[name] = ParameterSpec{
				Type:        ParamType(strings.ToLower(strings.TrimSpace(p.Type))),
				Default:     p.Default,
				Pattern:     p.Pattern,
				Choices:     p.Enum,
				Description: p.Description,
			}
		}
	}

	debug.Debug("[schema] Parsed manifest: name=%q, parameters=%d, include=%d, exclude=%d",
		m.Template.Name, len(m.Parameters), len(m.Files.Include), len(m.Files.Exclude))
	return m, nil
}

// ParseAndValidate parses and fully validates raw skaff.toml text.
func ParseAndValidate(data []byte) (*Manifest, error) {
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// syntaxError converts a TOML decoding error into a ValidationErrors batch
// with position information when available.
func syntaxError(err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return ValidationErrors{
			newErrorWithSuggestion("manifest",
				fmt.Sprintf("invalid TOML at line %d, column %d: %s", row, col, derr.Error()),
				"fix the TOML syntax before field validation can run"),
		}
	}
	return ValidationErrors{
		newError("manifest", fmt.Sprintf("invalid TOML: %v", err)),
	}
}
