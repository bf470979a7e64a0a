package discovery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/skaffio/skaff/internal/debug"
)

const (
	cacheFileName = "templates.json"

	// DefaultCacheTTL is how long a discovery result stays fresh.
	DefaultCacheTTL = time.Hour
)

// cachedTemplates is the on-disk cache format.
type cachedTemplates struct {
	// LastUpdated is when the cache entry was written.
	LastUpdated time.Time `json:"last_updated"`
	// Templates is the cached discovery result.
	Templates []TemplateInfo `json:"templates"`
}

// Cache stores discovery results on disk with a freshness window.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewCache creates a cache rooted at dir. A zero ttl means DefaultCacheTTL.
func NewCache(dir string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}
}

// Load returns the cached templates if a fresh entry exists, or nil when the
// cache is missing or stale. A corrupt cache file is treated as missing.
func (c *Cache) Load() ([]TemplateInfo, error) {
	path := filepath.Join(c.dir, cacheFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, newError(CacheFailed, "failed to read template cache", err)
	}

	var cached cachedTemplates
	if err := json.Unmarshal(data, &cached); err != nil {
		debug.Debug("[discovery] Ignoring corrupt cache file: %v", err)
		return nil, nil
	}

	age := c.now().Sub(cached.LastUpdated)
	if age >= c.ttl {
		debug.Debug("[discovery] Cache is stale (age %s, ttl %s)", age, c.ttl)
		return nil, nil
	}

	debug.Debug("[discovery] Cache hit: %d template(s), age %s", len(cached.Templates), age)
	return cached.Templates, nil
}

// Save writes a discovery result to the cache.
func (c *Cache) Save(templates []TemplateInfo) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return newError(CacheFailed, "failed to create cache directory", err)
	}

	cached := cachedTemplates{
		LastUpdated: c.now(),
		Templates:   templates,
	}
	data, err := json.MarshalIndent(&cached, "", "  ")
	if err != nil {
		return newError(CacheFailed, "failed to encode template cache", err)
	}

	path := filepath.Join(c.dir, cacheFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return newError(CacheFailed, "failed to write template cache", err)
	}
	return nil
}

// Clear removes the cache file if present.
func (c *Cache) Clear() error {
	path := filepath.Join(c.dir, cacheFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return newError(CacheFailed, "failed to clear template cache", err)
	}
	return nil
}

// CachedDiscoverer wraps a Discoverer with the cache: fresh cache entries
// are served directly, everything else falls through to the inner
// discoverer and refreshes the cache. A network failure with any cached
// entry on disk (even stale) falls back to it.
type CachedDiscoverer struct {
	inner Discoverer
	cache *Cache
}

// NewCachedDiscoverer wraps inner with cache.
func NewCachedDiscoverer(inner Discoverer, cache *Cache) *CachedDiscoverer {
	return &CachedDiscoverer{inner: inner, cache: cache}
}

// Discover serves from the cache when fresh, refreshing it otherwise.
func (d *CachedDiscoverer) Discover(ctx context.Context) ([]TemplateInfo, error) {
	if cached, err := d.cache.Load(); err == nil && cached != nil {
		return cached, nil
	}

	templates, err := d.inner.Discover(ctx)
	if err != nil {
		if stale := d.staleFallback(); stale != nil {
			debug.Debug("[discovery] Network discovery failed, serving stale cache: %v", err)
			return stale, nil
		}
		return nil, err
	}

	if err := d.cache.Save(templates); err != nil {
		debug.Debug("[discovery] Failed to update cache: %v", err)
	}
	return templates, nil
}

// Lookup returns a specific template by owner/repo shorthand.
func (d *CachedDiscoverer) Lookup(ctx context.Context, shorthand string) (*TemplateInfo, error) {
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

// staleFallback reads the cache file ignoring the freshness window.
func (d *CachedDiscoverer) staleFallback() []TemplateInfo {
	path := filepath.Join(d.cache.dir, cacheFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cached cachedTemplates
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	return cached.Templates
}
