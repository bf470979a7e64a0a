// Package params resolves user-supplied parameter values against a validated
// manifest, applying defaults and merging the reserved built-in variables
// into one immutable scope used for rendering.
package params

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/schema"
	"github.com/skaffio/skaff/internal/template/render"
)

// truthyLiterals and falsyLiterals are the accepted boolean spellings,
// matched case-insensitively.
var (
	truthyLiterals = map[string]bool{"true": true, "yes": true, "y": true, "1": true}
	falsyLiterals  = map[string]bool{"false": true, "no": true, "n": true, "0": true}
)

// Context carries the caller-supplied inputs for the reserved built-ins.
type Context struct {
	// ProjectName is the name of the project being created.
	ProjectName string
	// Author is the creating user's name.
	Author string
	// ToolVersion is the running CLI version.
	ToolVersion string
}

// Resolved is the immutable, fully type-checked parameter scope.
// It implements render.Variables and is safe to share across parallel
// file renders once constructed.
type Resolved struct {
	values map[string]render.Value
}

// Get implements render.Variables.
func (r *Resolved) Get(name string) (render.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names implements render.Variables.
func (r *Resolved) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve type-checks user values against the manifest's declared parameters,
// applies defaults for absent ones, and merges the reserved built-ins.
//
// All declared parameters and all supplied keys are checked before any error
// is surfaced; the returned error is a params.Errors batch. The manifest must
// already be schema-validated, which guarantees every parameter has a
// type-correct default and no declared name collides with a built-in.
func Resolve(m *schema.Manifest, user map[string]string, bctx Context, now time.Time) (*Resolved, error) {
	var errs Errors
	values := make(map[string]render.Value, len(m.Parameters)+len(schema.ReservedNames)+1)

	// Deterministic error order.
	names := make([]string, 0, len(m.Parameters))
	for name := range m.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := m.Parameters[name]

		raw, supplied := user[name]
		if !supplied {
			values[name] = defaultValue(&spec)
			debug.Debug("[params] %s: using default %q", name, spec.DefaultString())
			continue
		}

		value, err := checkValue(name, raw, &spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[name] = value
		debug.Debug("[params] %s: resolved to %q", name, value.Str())
	}

	// Reject names the manifest never declared.
	supplied := make([]string, 0, len(user))
	for name := range user {
		supplied = append(supplied, name)
	}
	sort.Strings(supplied)
	for _, name := range supplied {
		if _, declared := m.Parameters[name]; !declared {
			errs = append(errs, newError(UnknownParameter, name, user[name],
				"not declared by this template; declared parameters are %s",
				declaredList(names)))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	mergeBuiltins(values, m, bctx, now)

	return &Resolved{values: values}, nil
}

// checkValue type-checks and coerces a single user-supplied value.
func checkValue(name, raw string, spec *schema.ParameterSpec) (render.Value, *Error) {
	switch spec.Type {
	case schema.ParamString:
		if re := spec.PatternRegexp(); re != nil && !re.MatchString(raw) {
			return render.Value{}, newError(PatternMismatch, name, raw,
				"value %q does not match pattern %q", raw, spec.Pattern)
		}
		return render.StringValue(raw), nil

	case schema.ParamBoolean:
		lower := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case truthyLiterals[lower]:
			return render.BoolValue(true), nil
		case falsyLiterals[lower]:
			return render.BoolValue(false), nil
		default:
			return render.Value{}, newError(InvalidBoolean, name, raw,
				"value %q is not a boolean; use true/false, yes/no, y/n, or 1/0", raw)
		}

	case schema.ParamEnum:
		// Exact, case-sensitive membership.
		for _, choice := range spec.Choices {
			if raw == choice {
				return render.StringValue(raw), nil
			}
		}
		return render.Value{}, newError(InvalidChoice, name, raw,
			"value %q is not one of the allowed choices: %s",
			raw, strings.Join(spec.Choices, ", "))

	default:
		// Unreachable after schema validation.
		return render.Value{}, newError(UnknownParameter, name, raw,
			"parameter has unknown type %q", string(spec.Type))
	}
}

// defaultValue converts a spec's default into a render value.
func defaultValue(spec *schema.ParameterSpec) render.Value {
	if spec.Type == schema.ParamBoolean {
		b, _ := spec.Default.(bool)
		return render.BoolValue(b)
	}
	return render.StringValue(spec.DefaultString())
}

// mergeBuiltins adds the reserved built-in variables to the scope.
// Collisions with declared parameters are impossible here: schema validation
// rejects manifests that declare a reserved name.
func mergeBuiltins(values map[string]render.Value, m *schema.Manifest, bctx Context, now time.Time) {
	values["project_name"] = render.StringValue(bctx.ProjectName)
	values["author"] = render.StringValue(bctx.Author)
	values["version"] = render.StringValue(bctx.ToolVersion)
	values["date"] = render.StringValue(now.Format("2006-01-02"))
	values["timestamp"] = render.StringValue(strconv.FormatInt(now.Unix(), 10))

	// The manifest's author list is exposed for {% for %} loops.
	if _, declared := m.Parameters["authors"]; !declared {
		values["authors"] = render.ListValue(m.Template.Authors)
	}
}

// declaredList formats the declared parameter names for error messages.
func declaredList(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
