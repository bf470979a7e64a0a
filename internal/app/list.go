package app

import (
	"context"
	"sort"
	"time"

	"github.com/skaffio/skaff/internal/config"
	"github.com/skaffio/skaff/internal/discovery"
)

// ListOptions configures one list run.
type ListOptions struct {
	// Tags filters templates to those carrying at least one of the tags.
	Tags []string
	// NoCache bypasses the discovery cache.
	NoCache bool
}

// ListService lists published templates.
type ListService struct {
	cfg        *config.Config
	discoverer discovery.Discoverer
}

// NewListService creates a ListService wired to GitHub discovery with the
// configured cache.
func NewListService(cfg *config.Config) *ListService {
	return &ListService{
		cfg:        cfg,
		discoverer: discovery.NewGitHubDiscovery(cfg.GitHub.Token),
	}
}

// List returns discoverable templates, most starred first.
func (s *ListService) List(ctx context.Context, opts ListOptions) ([]discovery.TemplateInfo, error) {
	templates, err := s.discover(ctx, opts.NoCache)
	if err != nil {
		return nil, newError(DiscoveryFailed, "template discovery failed", err)
	}

	if len(opts.Tags) > 0 {
		filtered := templates[:0]
		for _, t := range templates {
			if t.MatchesTags(opts.Tags) {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Stars > templates[j].Stars
	})
	return templates, nil
}

func (s *ListService) discover(ctx context.Context, noCache bool) ([]discovery.TemplateInfo, error) {
	d := s.discoverer
	if s.cfg.Cache.Enabled && !noCache {
		cache := discovery.NewCache(s.cfg.CacheDir(), time.Duration(s.cfg.Cache.TTLSeconds)*time.Second)
		d = discovery.NewCachedDiscoverer(d, cache)
	}
	return d.Discover(ctx)
}
