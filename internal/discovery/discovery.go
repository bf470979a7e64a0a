// Package discovery finds published templates on GitHub by searching for
// repositories tagged with the skaff-template topic, with a local cache to
// keep repeated listings off the network.
package discovery

import (
	"context"
	"strings"
)

// Topic is the GitHub repository topic that marks a skaff template.
const Topic = "skaff-template"

// TemplateInfo describes one discoverable template repository.
type TemplateInfo struct {
	// Name is the display name (repository description when present,
	// repository name otherwise).
	Name string `json:"name"`
	// Description is the repository's one-line description.
	Description string `json:"description"`
	// URL is the repository's HTML URL.
	URL string `json:"url"`
	// Owner is the repository owner login.
	Owner string `json:"owner"`
	// Repo is the repository name.
	Repo string `json:"repo"`
	// Stars is the stargazer count.
	Stars int `json:"stars"`
	// Language is the repository's primary language.
	Language string `json:"language"`
	// Topics are the repository's GitHub topics.
	Topics []string `json:"topics,omitempty"`
}

// Shorthand returns the owner/repo form used to reference the template.
func (t *TemplateInfo) Shorthand() string {
	return t.Owner + "/" + t.Repo
}

// MatchesTags reports whether the template carries at least one of the given
// topics. An empty filter matches everything.
func (t *TemplateInfo) MatchesTags(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		for _, topic := range t.Topics {
			if strings.EqualFold(topic, tag) {
				return true
			}
		}
	}
	return false
}

// Discoverer lists published templates.
type Discoverer interface {
	// Discover returns all templates tagged with the skaff topic, most
	// starred first.
	Discover(ctx context.Context) ([]TemplateInfo, error)

	// Lookup returns a specific template by owner/repo shorthand, or nil
	// if it is not among the discovered templates.
	Lookup(ctx context.Context, shorthand string) (*TemplateInfo, error)
}
