package params

import (
	"testing"
	"time"

	"github.com/skaffio/skaff/internal/schema"
)

const testManifest = `
[template]
name = "demo"
description = "A demo template used by the resolver tests"
version = "1.0.0"
authors = ["Casey <casey@example.com>", "Robin <robin@example.com>"]
repository = "https://github.com/skaffio/demo"

[parameters.project_slug]
type = "string"
default = "my-app"
pattern = "^[a-z][a-z0-9-]*$"

[parameters.use_docker]
type = "boolean"
default = false

[parameters.license]
type = "enum"
enum = ["MIT", "Apache-2.0", "GPL-3.0"]
default = "MIT"
`

func testContext() Context {
	return Context{
		ProjectName: "demo-project",
		Author:      "Casey",
		ToolVersion: "0.1.0",
	}
}

func mustManifest(t *testing.T) *schema.Manifest {
	t.Helper()
	m, err := schema.ParseAndValidate([]byte(testManifest))
	if err != nil {
		t.Fatalf("ParseAndValidate() error = %v", err)
	}
	return m
}

func TestResolveDefaults(t *testing.T) {
	m := mustManifest(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	resolved, err := Resolve(m, nil, testContext(), now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"project_slug", "my-app"},
		{"use_docker", "false"},
		{"license", "MIT"},
		{"project_name", "demo-project"},
		{"author", "Casey"},
		{"version", "0.1.0"},
		{"date", "2026-08-25"},
	}
	for _, tt := range tests {
		v, ok := resolved.Get(tt.name)
		if !ok {
			t.Errorf("Get(%q) missing", tt.name)
			continue
		}
		if v.Str() != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.name, v.Str(), tt.want)
		}
	}

	authors, ok := resolved.Get("authors")
	if !ok {
		t.Fatal("Get(\"authors\") missing")
	}
	if got, isList := authors.List(); !isList || len(got) != 2 {
		t.Errorf("authors = %v (list=%v), want 2-entry list", got, isList)
	}
}

func TestResolveUserOverrides(t *testing.T) {
	m := mustManifest(t)
	user := map[string]string{
		"project_slug": "cool-service",
		"use_docker":   "yes",
		"license":      "Apache-2.0",
	}

	resolved, err := Resolve(m, user, testContext(), time.Now())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if v, _ := resolved.Get("project_slug"); v.Str() != "cool-service" {
		t.Errorf("project_slug = %q, want %q", v.Str(), "cool-service")
	}
	if v, _ := resolved.Get("use_docker"); v.Str() != "true" {
		t.Errorf("use_docker = %q, want %q", v.Str(), "true")
	}
	if v, _ := resolved.Get("license"); v.Str() != "Apache-2.0" {
		t.Errorf("license = %q, want %q", v.Str(), "Apache-2.0")
	}
}

func TestResolvePatternMismatch(t *testing.T) {
	m := mustManifest(t)

	_, err := Resolve(m, map[string]string{"project_slug": "My App"}, testContext(), time.Now())
	if err == nil {
		t.Fatal("Resolve() expected pattern error, got nil")
	}
	errs := err.(Errors)
	if len(errs) != 1 || errs[0].Type != PatternMismatch {
		t.Errorf("errs = %v, want single PatternMismatch", errs)
	}
	if errs[0].Name != "project_slug" {
		t.Errorf("Name = %q, want project_slug", errs[0].Name)
	}
}

func TestResolveBooleanLiterals(t *testing.T) {
	tests := []struct {
		raw     string
		want    bool
		invalid bool
	}{
		{raw: "true", want: true},
		{raw: "TRUE", want: true},
		{raw: "yes", want: true},
		{raw: "y", want: true},
		{raw: "1", want: true},
		{raw: "false", want: false},
		{raw: "No", want: false},
		{raw: "n", want: false},
		{raw: "0", want: false},
		{raw: " true ", want: true},
		{raw: "maybe", invalid: true},
		{raw: "2", invalid: true},
		{raw: "", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			m := mustManifest(t)
			resolved, err := Resolve(m, map[string]string{"use_docker": tt.raw}, testContext(), time.Now())

			if tt.invalid {
				if err == nil {
					t.Fatalf("Resolve(use_docker=%q) expected error, got nil", tt.raw)
				}
				errs := err.(Errors)
				if errs[0].Type != InvalidBoolean {
					t.Errorf("Type = %v, want InvalidBoolean", errs[0].Type)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			v, _ := resolved.Get("use_docker")
			got, isBool := v.Bool()
			if !isBool || got != tt.want {
				t.Errorf("use_docker = %v (bool=%v), want %v", got, isBool, tt.want)
			}
		})
	}
}

func TestResolveEnumCaseSensitive(t *testing.T) {
	m := mustManifest(t)

	_, err := Resolve(m, map[string]string{"license": "mit"}, testContext(), time.Now())
	if err == nil {
		t.Fatal("Resolve() expected choice error, got nil")
	}
	errs := err.(Errors)
	if errs[0].Type != InvalidChoice {
		t.Errorf("Type = %v, want InvalidChoice", errs[0].Type)
	}
}

func TestResolveUnknownParameter(t *testing.T) {
	m := mustManifest(t)

	_, err := Resolve(m, map[string]string{"nonexistent": "x"}, testContext(), time.Now())
	if err == nil {
		t.Fatal("Resolve() expected unknown-parameter error, got nil")
	}
	errs := err.(Errors)
	if errs[0].Type != UnknownParameter {
		t.Errorf("Type = %v, want UnknownParameter", errs[0].Type)
	}
}

func TestResolveAccumulatesErrors(t *testing.T) {
	m := mustManifest(t)
	user := map[string]string{
		"project_slug": "Bad Name",
		"use_docker":   "maybe",
		"license":      "WTFPL",
		"extra":        "x",
	}

	_, err := Resolve(m, user, testContext(), time.Now())
	if err == nil {
		t.Fatal("Resolve() expected errors, got nil")
	}
	errs := err.(Errors)
	if len(errs) != 4 {
		t.Errorf("len(errs) = %d, want 4 accumulated errors: %v", len(errs), errs)
	}
}

func TestResolvedNamesSorted(t *testing.T) {
	m := mustManifest(t)
	resolved, err := Resolve(m, nil, testContext(), time.Now())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	names := resolved.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
	// Declared parameters plus the built-ins.
	if len(names) != 9 {
		t.Errorf("len(Names()) = %d, want 9 (%v)", len(names), names)
	}
}
