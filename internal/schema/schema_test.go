package schema

import (
	"strings"
	"testing"
)

// validManifest is a minimal manifest that passes every rule.
const validManifest = `
[template]
name = "rust-api"
description = "A REST API service starter with sensible defaults"
version = "1.0.0"
authors = ["Jordan Doe <jordan@example.com>"]
repository = "https://github.com/skaffio/rust-api"
tags = ["rust", "api"]

[parameters.license]
type = "enum"
enum = ["MIT", "Apache-2.0"]
default = "MIT"

[parameters.project_slug]
type = "string"
default = "my-app"
pattern = "^[a-z][a-z0-9-]*$"

[parameters.use_docker]
type = "boolean"
default = true

[files]
include = ["src/**", "Cargo.toml"]
exclude = ["src/secret.rs"]
`

func TestParseAndValidateValid(t *testing.T) {
	m, err := ParseAndValidate([]byte(validManifest))
	if err != nil {
		t.Fatalf("ParseAndValidate() error = %v", err)
	}

	if m.Template.Name != "rust-api" {
		t.Errorf("Name = %q, want %q", m.Template.Name, "rust-api")
	}
	if len(m.Parameters) != 3 {
		t.Errorf("len(Parameters) = %d, want 3", len(m.Parameters))
	}

	slug := m.Parameters["project_slug"]
	if slug.Type != ParamString {
		t.Errorf("project_slug.Type = %q, want %q", slug.Type, ParamString)
	}
	if slug.PatternRegexp() == nil {
		t.Error("project_slug pattern was not compiled during validation")
	}

	license := m.Parameters["license"]
	if license.Type != ParamEnum || len(license.Choices) != 2 {
		t.Errorf("license = %+v, want enum with 2 choices", license)
	}

	docker := m.Parameters["use_docker"]
	if got, want := docker.DefaultString(), "true"; got != want {
		t.Errorf("use_docker.DefaultString() = %q, want %q", got, want)
	}
}

func TestParseSyntaxErrorFailsFast(t *testing.T) {
	_, err := Parse([]byte("[template\nname = \"x\""))
	if err == nil {
		t.Fatal("Parse() expected syntax error, got nil")
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	m, err := Parse([]byte("[template]\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	err = Validate(m)
	if err == nil {
		t.Fatal("Validate() expected errors, got nil")
	}
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Validate() error type = %T, want ValidationErrors", err)
	}

	// Every missing required field is named in one batch.
	fields := errs.Fields()
	for _, want := range []string{
		"template.name",
		"template.description",
		"template.version",
		"template.authors",
		"template.repository",
	} {
		found := false
		for _, f := range fields {
			if f == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing finding for field %q in %v", want, fields)
		}
	}
}

func TestValidateMetadataRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(m *Manifest)
		wantField string
	}{
		{
			name:      "name too long",
			mutate:    func(m *Manifest) { m.Template.Name = strings.Repeat("a", MaxNameLength+1) },
			wantField: "template.name",
		},
		{
			name:      "description too short",
			mutate:    func(m *Manifest) { m.Template.Description = "too short" },
			wantField: "template.description",
		},
		{
			name:      "description too long",
			mutate:    func(m *Manifest) { m.Template.Description = strings.Repeat("d", MaxDescriptionLength+1) },
			wantField: "template.description",
		},
		{
			name:      "version with v prefix",
			mutate:    func(m *Manifest) { m.Template.Version = "v1.0.0" },
			wantField: "template.version",
		},
		{
			name:      "version missing patch",
			mutate:    func(m *Manifest) { m.Template.Version = "1.0" },
			wantField: "template.version",
		},
		{
			name:      "non-github repository",
			mutate:    func(m *Manifest) { m.Template.Repository = "https://gitlab.com/owner/repo" },
			wantField: "template.repository",
		},
		{
			name:      "http repository",
			mutate:    func(m *Manifest) { m.Template.Repository = "http://github.com/owner/repo" },
			wantField: "template.repository",
		},
		{
			name:      "blank author entry",
			mutate:    func(m *Manifest) { m.Template.Authors = []string{"  "} },
			wantField: "template.authors[0]",
		},
		{
			name:      "too many tags",
			mutate:    func(m *Manifest) { m.Template.Tags = make([]string, MaxTags+1) },
			wantField: "template.tags",
		},
		{
			name:      "bad min tool version",
			mutate:    func(m *Manifest) { m.Template.MinToolVersion = "latest" },
			wantField: "template.min_tool_version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(validManifest))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.mutate(m)

			err = Validate(m)
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !hasField(t, err, tt.wantField) {
				t.Errorf("Validate() = %v, want finding on field %q", err, tt.wantField)
			}
		})
	}
}

func TestValidateParameterRules(t *testing.T) {
	tests := []struct {
		name      string
		spec      ParameterSpec
		wantField string
	}{
		{
			name:      "missing type",
			spec:      ParameterSpec{Default: "x"},
			wantField: "parameters.p.type",
		},
		{
			name:      "unknown type",
			spec:      ParameterSpec{Type: "integer", Default: "1"},
			wantField: "parameters.p.type",
		},
		{
			name:      "string without default",
			spec:      ParameterSpec{Type: ParamString},
			wantField: "parameters.p.default",
		},
		{
			name:      "string with invalid pattern",
			spec:      ParameterSpec{Type: ParamString, Default: "x", Pattern: "["},
			wantField: "parameters.p.pattern",
		},
		{
			name:      "default does not match pattern",
			spec:      ParameterSpec{Type: ParamString, Default: "My App", Pattern: "^[a-z-]+$"},
			wantField: "parameters.p.default",
		},
		{
			name:      "string with enum choices",
			spec:      ParameterSpec{Type: ParamString, Default: "x", Choices: []string{"a", "b"}},
			wantField: "parameters.p.enum",
		},
		{
			name:      "boolean with string default",
			spec:      ParameterSpec{Type: ParamBoolean, Default: "true"},
			wantField: "parameters.p.default",
		},
		{
			name:      "boolean with pattern",
			spec:      ParameterSpec{Type: ParamBoolean, Default: true, Pattern: ".*"},
			wantField: "parameters.p.pattern",
		},
		{
			name:      "enum with one choice",
			spec:      ParameterSpec{Type: ParamEnum, Default: "a", Choices: []string{"a"}},
			wantField: "parameters.p.enum",
		},
		{
			name:      "enum with duplicate choices",
			spec:      ParameterSpec{Type: ParamEnum, Default: "a", Choices: []string{"a", "a"}},
			wantField: "parameters.p.enum[1]",
		},
		{
			name:      "enum default outside choices",
			spec:      ParameterSpec{Type: ParamEnum, Default: "c", Choices: []string{"a", "b"}},
			wantField: "parameters.p.default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(validManifest))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			m.Parameters["p"] = tt.spec

			err = Validate(m)
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !hasField(t, err, tt.wantField) {
				t.Errorf("Validate() = %v, want finding on field %q", err, tt.wantField)
			}
		})
	}
}

func TestValidateReservedParameterName(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m.Parameters["project_name"] = ParameterSpec{Type: ParamString, Default: "x"}

	err = Validate(m)
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if !hasField(t, err, "parameters.project_name") {
		t.Errorf("Validate() = %v, want reserved-name finding", err)
	}
}

func TestValidateFileRules(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m.Files.Include = append(m.Files.Include, "[")
	m.Files.Exclude = append(m.Files.Exclude, "")

	err = Validate(m)
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if !hasField(t, err, "files.include[2]") {
		t.Errorf("Validate() = %v, want finding on files.include[2]", err)
	}
	if !hasField(t, err, "files.exclude[1]") {
		t.Errorf("Validate() = %v, want finding on files.exclude[1]", err)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m.Template.Version = "not-semver"
	m.Template.Repository = "ftp://example.com"
	m.Parameters["bad"] = ParameterSpec{Type: "float"}

	err = Validate(m)
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Validate() error type = %T, want ValidationErrors", err)
	}
	if len(errs) < 3 {
		t.Errorf("len(errs) = %d, want at least 3 accumulated findings: %v", len(errs), errs)
	}
}

func TestIsReservedName(t *testing.T) {
	for _, name := range []string{"project_name", "author", "version", "date", "timestamp"} {
		if !IsReservedName(name) {
			t.Errorf("IsReservedName(%q) = false, want true", name)
		}
	}
	if IsReservedName("license") {
		t.Error("IsReservedName(\"license\") = true, want false")
	}
}

// hasField reports whether err is a ValidationErrors batch containing a
// finding for the given field.
func hasField(t *testing.T, err error, field string) bool {
	t.Helper()
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	for _, f := range errs.Fields() {
		if f == field {
			return true
		}
	}
	return false
}
