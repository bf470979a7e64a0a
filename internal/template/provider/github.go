package provider

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/template/model"
)

// GitHubProvider implements Provider for GitHub repositories. Templates are
// fetched as release/branch tarballs rather than per-file API calls, so a
// fetch costs one request regardless of template size.
type GitHubProvider struct {
	// HTTPClient is the HTTP client used for all requests.
	HTTPClient *http.Client
	// Token is an optional personal access token for private repositories.
	Token string
}

// NewGitHubProvider creates a GitHub provider without authentication.
func NewGitHubProvider() *GitHubProvider {
	return &GitHubProvider{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGitHubProviderWithToken creates an authenticated GitHub provider.
func NewGitHubProviderWithToken(token string) *GitHubProvider {
	p := NewGitHubProvider()
	p.Token = token
	return p
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// Resolve converts a GitHub source string to a TemplateRef.
func (p *GitHubProvider) Resolve(source string) (model.TemplateRef, error) {
	ref, err := ParseGitHubSource(source)
	if err != nil {
		return model.TemplateRef{}, sourceError(p.Name(), source, err)
	}
	return *ref, nil
}

// Validate checks that the repository exists and is accessible.
func (p *GitHubProvider) Validate(ctx context.Context, ref model.TemplateRef) error {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s", ref.Owner, ref.Repo)
	debug.Debug("[github] Validating repository: %s", apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fetchError(p.Name(), p.sourceOf(ref), err)
	}
	p.setHeaders(req)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fetchError(p.Name(), p.sourceOf(ref), err)
	}
	defer resp.Body.Close()

	return p.checkStatus(resp.StatusCode, ref)
}

// Fetch downloads and extracts the repository archive, then loads the
// template from the referenced subdirectory.
func (p *GitHubProvider) Fetch(ctx context.Context, ref model.TemplateRef) (*model.Template, error) {
	archivePath, err := p.downloadArchive(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer os.Remove(archivePath)

	extractDir, err := extractArchive(archivePath)
	if err != nil {
		return nil, fetchError(p.Name(), p.sourceOf(ref),
			fmt.Errorf("failed to extract archive: %w", err))
	}
	defer os.RemoveAll(extractDir)

	templateRoot := extractDir
	if ref.Path != "" {
		templateRoot = filepath.Join(extractDir, filepath.FromSlash(ref.Path))
		if _, err := os.Stat(templateRoot); err != nil {
			return nil, templateError(p.Name(), p.sourceOf(ref),
				fmt.Sprintf("subdirectory '%s' not found in repository", ref.Path), err)
		}
	}

	manifest, err := loadManifest(templateRoot)
	if err != nil {
		return nil, templateError(p.Name(), p.sourceOf(ref), "invalid template manifest", err)
	}

	files, err := collectFiles(templateRoot)
	if err != nil {
		return nil, fetchError(p.Name(), p.sourceOf(ref), err)
	}

	return &model.Template{
		Ref:      ref,
		Manifest: manifest,
		Files:    files,
	}, nil
}

// downloadArchive fetches the repository tarball to a temporary file and
// returns its path. The caller removes the file.
func (p *GitHubProvider) downloadArchive(ctx context.Context, ref model.TemplateRef) (string, error) {
	archiveURL := fmt.Sprintf("https://github.com/%s/%s/archive/%s.tar.gz",
		ref.Owner, ref.Repo, ref.Ref)
	debug.Debug("[github] Downloading archive: %s", archiveURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", fetchError(p.Name(), p.sourceOf(ref), err)
	}
	p.setHeaders(req)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", fetchError(p.Name(), p.sourceOf(ref), err)
	}
	defer resp.Body.Close()

	if err := p.checkStatus(resp.StatusCode, ref); err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp("", "skaff-archive-*.tar.gz")
	if err != nil {
		return "", fetchError(p.Name(), p.sourceOf(ref),
			fmt.Errorf("failed to create temp file: %w", err))
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", fetchError(p.Name(), p.sourceOf(ref),
			fmt.Errorf("failed to download archive: %w", err))
	}
	return tmpFile.Name(), nil
}

// checkStatus maps HTTP status codes to provider errors.
func (p *GitHubProvider) checkStatus(status int, ref model.TemplateRef) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return notFoundError(p.Name(), p.sourceOf(ref))
	case http.StatusUnauthorized, http.StatusForbidden:
		return authError(p.Name(), p.sourceOf(ref))
	default:
		return fetchError(p.Name(), p.sourceOf(ref),
			fmt.Errorf("unexpected status code: %d", status))
	}
}

// sourceOf formats a ref back into a display source string.
func (p *GitHubProvider) sourceOf(ref model.TemplateRef) string {
	s := fmt.Sprintf("github.com/%s/%s", ref.Owner, ref.Repo)
	if ref.Path != "" {
		s += "/" + ref.Path
	}
	return s
}

// setHeaders attaches authentication when a token is configured.
func (p *GitHubProvider) setHeaders(req *http.Request) {
	if p.Token != "" {
		req.Header.Set("Authorization", "token "+p.Token)
	}
}

// extractArchive unpacks a .tar.gz archive to a fresh temporary directory,
// stripping the "repo-ref/" root directory GitHub prepends. Entries that
// would escape the extraction directory are rejected.
func extractArchive(archivePath string) (string, error) {
	extractDir, err := os.MkdirTemp("", "skaff-template-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	cleanup := func(err error) (string, error) {
		os.RemoveAll(extractDir)
		return "", err
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return cleanup(fmt.Errorf("failed to open archive: %w", err))
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return cleanup(fmt.Errorf("failed to create gzip reader: %w", err))
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cleanup(fmt.Errorf("failed to read tar entry: %w", err))
		}

		// Strip the archive's single root directory.
		_, relPath, ok := strings.Cut(header.Name, "/")
		if !ok || relPath == "" {
			continue
		}

		target := filepath.Join(extractDir, filepath.FromSlash(relPath))
		if !strings.HasPrefix(target, extractDir+string(os.PathSeparator)) {
			return cleanup(fmt.Errorf("archive entry escapes extraction directory: %s", header.Name))
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return cleanup(fmt.Errorf("failed to create directory %s: %w", relPath, err))
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return cleanup(fmt.Errorf("failed to create parent directory for %s: %w", relPath, err))
			}
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode).Perm())
			if err != nil {
				return cleanup(fmt.Errorf("failed to create file %s: %w", relPath, err))
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return cleanup(fmt.Errorf("failed to write file %s: %w", relPath, err))
			}
			out.Close()
		default:
			// Symlinks and special entries are not extracted.
			debug.Debug("[github] Skipping archive entry %s (type %d)", header.Name, header.Typeflag)
		}
	}
	return extractDir, nil
}
