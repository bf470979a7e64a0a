package generator

import (
	"os"
	"path/filepath"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/template/model"
)

// Writer writes rendered files to the filesystem. It is the thin I/O layer
// on top of the otherwise side-effect-free pipeline.
type Writer interface {
	// WriteFile writes content to a file with the specified permissions.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer.
type FileWriter struct {
	preserveExecutable bool
}

// NewFileWriter creates a FileWriter. If preserveExecutable is true, the
// executable bit from template files is carried over; otherwise files are
// created with 0644.
func NewFileWriter(preserveExecutable bool) *FileWriter {
	return &FileWriter{preserveExecutable: preserveExecutable}
}

// WriteFile writes content atomically using a temporary file and rename.
// Parent directories are created as needed.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	debug.Debug("[generator] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), mode)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return err
		}
	}

	fileMode := mode
	if !w.preserveExecutable {
		fileMode = 0644
	} else if fileMode&0600 == 0 {
		// Ensure at least read/write for owner.
		fileMode |= 0600
	}

	tempFile := path + ".tmp"
	f, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return newError(WriteFailed, "failed to create temporary file", path, err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = os.Remove(tempFile)
		return newError(WriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newError(WriteFailed, "failed to close file", path, closeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newError(WriteFailed, "failed to rename temporary file", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return newError(WriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteSummary reports what WriteAll did.
type WriteSummary struct {
	// Created is the number of new files written.
	Created int
	// Skipped is the number of existing files left untouched.
	Skipped int
	// Overwritten is the number of existing files replaced.
	Overwritten int
}

// WriteAll writes a pipeline result's files under outputDir. Existing files
// are skipped unless overwrite is set. Stops at the first write error.
func WriteAll(w Writer, outputDir string, files []model.RenderedFile, overwrite bool) (*WriteSummary, error) {
	summary := &WriteSummary{}

	for _, file := range files {
		target := filepath.Join(outputDir, filepath.FromSlash(file.Path))

		exists := w.Exists(target)
		if exists && !overwrite {
			debug.Debug("[generator] Skipping existing file: %s", target)
			summary.Skipped++
			continue
		}

		if err := w.WriteFile(target, file.Content, file.Mode); err != nil {
			return summary, err
		}
		if exists {
			summary.Overwritten++
		} else {
			summary.Created++
		}
	}

	debug.Debug("[generator] Wrote %d file(s), skipped %d, overwrote %d",
		summary.Created, summary.Skipped, summary.Overwritten)
	return summary, nil
}
