package provider

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/schema"
	"github.com/skaffio/skaff/internal/template/generator"
	"github.com/skaffio/skaff/internal/template/model"
)

// loadManifest reads and validates the manifest at the template root.
// Validation failures are returned as-is so callers can surface the full
// list of findings.
func loadManifest(templateRoot string) (*schema.Manifest, error) {
	manifestPath := filepath.Join(templateRoot, schema.ManifestFileName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found in template root", schema.ManifestFileName)
		}
		return nil, fmt.Errorf("failed to read %s: %w", schema.ManifestFileName, err)
	}

	manifest, err := schema.ParseAndValidate(data)
	if err != nil {
		return nil, err
	}

	debug.Debug("[provider] Loaded manifest: name=%s version=%s, %d parameter(s)",
		manifest.Template.Name, manifest.Template.Version, len(manifest.Parameters))
	return manifest, nil
}

// collectFiles walks the template root and gathers every regular file as a
// TemplateFile with a slash-separated relative path. Symlinks, devices and
// other non-regular entries are skipped. The manifest file itself is skipped
// too; it configures the template and is never part of the output.
func collectFiles(templateRoot string) ([]model.TemplateFile, error) {
	var files []model.TemplateFile
	var totalBytes int64

	err := filepath.Walk(templateRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				debug.Debug("[provider] Skipping vanished entry: %s", path)
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			debug.Debug("[provider] Skipping non-regular file: %s", path)
			return nil
		}

		relPath, err := filepath.Rel(templateRoot, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		if relPath == schema.ManifestFileName {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", relPath, err)
		}

		files = append(files, model.TemplateFile{
			Path:     relPath,
			Content:  content,
			Mode:     info.Mode().Perm(),
			IsBinary: generator.IsBinary(relPath, content, nil),
		})
		totalBytes += int64(len(content))
		return nil
	})
	if err != nil {
		return nil, err
	}

	debug.Debug("[provider] Collected %d file(s), %d bytes total", len(files), totalBytes)
	return files, nil
}
