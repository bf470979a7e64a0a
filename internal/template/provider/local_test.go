package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skaffio/skaff/internal/schema"
)

const localTestManifest = `
[template]
name = "local-demo"
description = "A local template used by the provider tests"
version = "1.0.0"
authors = ["Casey <casey@example.com>"]
repository = "https://github.com/skaffio/local-demo"
`

// writeTemplateDir lays out a template directory for tests.
func writeTemplateDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLocalProviderFetch(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		schema.ManifestFileName: localTestManifest,
		"README.md":             "# {{ project_name }}",
		"src/main.rs":           "fn main() {}",
	})

	p := NewLocalProvider()
	ref, err := p.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	tmpl, err := p.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if tmpl.Manifest.Template.Name != "local-demo" {
		t.Errorf("manifest name = %q, want local-demo", tmpl.Manifest.Template.Name)
	}
	// The manifest itself is not part of the template files.
	if len(tmpl.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2: %+v", len(tmpl.Files), tmpl.Files)
	}
	for _, f := range tmpl.Files {
		if f.Path == schema.ManifestFileName {
			t.Error("manifest file was collected as template content")
		}
	}
}

func TestLocalProviderRelativePath(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		schema.ManifestFileName: localTestManifest,
	})

	p := NewLocalProviderWithBase(filepath.Dir(dir))
	ref, err := p.Resolve("./" + filepath.Base(dir))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := p.Validate(context.Background(), ref); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLocalProviderMissingPath(t *testing.T) {
	p := NewLocalProvider()
	_, err := p.Resolve("/nonexistent/skaff/template")
	if err == nil {
		t.Fatal("Resolve() expected error for missing path")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Type != NotFound {
		t.Errorf("err = %v, want NotFound provider error", err)
	}
}

func TestLocalProviderMissingManifest(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{"README.md": "no manifest here"})

	p := NewLocalProvider()
	ref, err := p.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	err = p.Validate(context.Background(), ref)
	var perr *Error
	if !errors.As(err, &perr) || perr.Type != InvalidTemplate {
		t.Errorf("Validate() = %v, want InvalidTemplate", err)
	}
}

func TestLocalProviderInvalidManifest(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		schema.ManifestFileName: "[template]\nname = \"x\"\n",
	})

	p := NewLocalProvider()
	ref, err := p.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	_, err = p.Fetch(context.Background(), ref)
	var perr *Error
	if !errors.As(err, &perr) || perr.Type != InvalidTemplate {
		t.Errorf("Fetch() = %v, want InvalidTemplate", err)
	}
	// The manifest findings are preserved for display.
	var findings schema.ValidationErrors
	if !errors.As(err, &findings) {
		t.Errorf("Fetch() error does not wrap the validation findings: %v", err)
	}
}

func TestLocalProviderBinaryDetection(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		schema.ManifestFileName: localTestManifest,
		"text.txt":              "hello",
	})
	if err := os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0x00, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}

	p := NewLocalProvider()
	ref, err := p.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	tmpl, err := p.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	for _, f := range tmpl.Files {
		switch f.Path {
		case "blob.bin":
			if !f.IsBinary {
				t.Error("blob.bin not flagged binary")
			}
		case "text.txt":
			if f.IsBinary {
				t.Error("text.txt flagged binary")
			}
		}
	}
}
