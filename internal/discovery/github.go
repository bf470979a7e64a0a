package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skaffio/skaff/internal/debug"
)

const (
	githubAPIBase = "https://api.github.com"
	searchPerPage = 100
)

// searchResponse is the GitHub repository search response shape.
type searchResponse struct {
	Items []repositoryInfo `json:"items"`
}

// repositoryInfo is one repository entry from the search response.
type repositoryInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Owner           owner    `json:"owner"`
	StargazersCount int      `json:"stargazers_count"`
	Language        string   `json:"language"`
	Topics          []string `json:"topics"`
}

type owner struct {
	Login string `json:"login"`
}

// GitHubDiscovery implements Discoverer against the GitHub search API.
type GitHubDiscovery struct {
	// HTTPClient is the HTTP client used for API requests.
	HTTPClient *http.Client
	// Token is an optional GitHub token; authenticated requests get a
	// much higher search rate limit.
	Token string
	// BaseURL overrides the GitHub API base, for tests.
	BaseURL string
}

// NewGitHubDiscovery creates a GitHub discoverer.
func NewGitHubDiscovery(token string) *GitHubDiscovery {
	return &GitHubDiscovery{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Token:      token,
	}
}

// Discover queries the GitHub search API for repositories tagged with the
// skaff topic, most starred first.
func (d *GitHubDiscovery) Discover(ctx context.Context) ([]TemplateInfo, error) {
	base := d.BaseURL
	if base == "" {
		base = githubAPIBase
	}
	searchURL := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=%d",
		base, url.QueryEscape("topic:"+Topic), searchPerPage)
	debug.Debug("[discovery] Searching: %s", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, newError(APIFailed, "failed to build search request", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "skaff")
	if d.Token != "" {
		req.Header.Set("Authorization", "token "+d.Token)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return nil, newError(APIFailed, "failed to query GitHub search API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return nil, newError(RateLimited,
			"GitHub API rate limit exceeded, try again later or set a token", nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, newError(APIFailed,
			fmt.Sprintf("GitHub API returned %d: %s", resp.StatusCode, string(body)), nil)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, newError(APIFailed, "failed to parse GitHub search response", err)
	}

	templates := make([]TemplateInfo, 0, len(search.Items))
	for _, repo := range search.Items {
		name := repo.Description
		if name == "" {
			name = repo.Name
		}
		templates = append(templates, TemplateInfo{
			Name:        name,
			Description: repo.Description,
			URL:         repo.HTMLURL,
			Owner:       repo.Owner.Login,
			Repo:        repo.Name,
			Stars:       repo.StargazersCount,
			Language:    repo.Language,
			Topics:      repo.Topics,
		})
	}

	debug.Debug("[discovery] Found %d template(s)", len(templates))
	return templates, nil
}

// Lookup returns a specific template by owner/repo shorthand.
func (d *GitHubDiscovery) Lookup(ctx context.Context, shorthand string) (*TemplateInfo, error) {
	templates, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].Shorthand() == shorthand {
			return &templates[i], nil
		}
	}
	return nil, nil
}
