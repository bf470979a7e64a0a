package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTemplateInfoShorthand(t *testing.T) {
	info := TemplateInfo{Owner: "skaffio", Repo: "rust-api"}
	if got := info.Shorthand(); got != "skaffio/rust-api" {
		t.Errorf("Shorthand() = %q, want skaffio/rust-api", got)
	}
}

func TestTemplateInfoMatchesTags(t *testing.T) {
	info := TemplateInfo{Topics: []string{"skaff-template", "rust", "api"}}

	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"empty filter matches", nil, true},
		{"single match", []string{"rust"}, true},
		{"any match suffices", []string{"python", "api"}, true},
		{"case insensitive", []string{"RUST"}, true},
		{"no match", []string{"python", "go"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := info.MatchesTags(tt.tags); got != tt.want {
				t.Errorf("MatchesTags(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestGitHubDiscovery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "topic:"+Topic {
			t.Errorf("query = %q, want topic:%s", q, Topic)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"name": "rust-api",
					"description": "REST API starter",
					"html_url": "https://github.com/skaffio/rust-api",
					"owner": {"login": "skaffio"},
					"stargazers_count": 42,
					"language": "Rust",
					"topics": ["skaff-template", "rust"]
				},
				{
					"name": "bare",
					"description": "",
					"html_url": "https://github.com/skaffio/bare",
					"owner": {"login": "skaffio"},
					"stargazers_count": 1,
					"language": "",
					"topics": []
				}
			]
		}`))
	}))
	defer srv.Close()

	d := NewGitHubDiscovery("")
	d.BaseURL = srv.URL

	templates, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("len = %d, want 2", len(templates))
	}

	first := templates[0]
	if first.Name != "REST API starter" || first.Owner != "skaffio" || first.Stars != 42 {
		t.Errorf("first = %+v", first)
	}
	// Repository name is the fallback display name.
	if templates[1].Name != "bare" {
		t.Errorf("fallback name = %q, want bare", templates[1].Name)
	}
}

func TestGitHubDiscoveryRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	d := NewGitHubDiscovery("")
	d.BaseURL = srv.URL

	_, err := d.Discover(context.Background())
	if err == nil {
		t.Fatal("Discover() expected rate-limit error")
	}
	if derr, ok := err.(*Error); !ok || derr.Type != RateLimited {
		t.Errorf("err = %v, want RateLimited", err)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, time.Hour)

	// Empty cache misses.
	got, err := cache.Load()
	if err != nil || got != nil {
		t.Fatalf("Load() on empty cache = %v, %v; want nil, nil", got, err)
	}

	templates := []TemplateInfo{{Owner: "skaffio", Repo: "rust-api", Stars: 3}}
	if err := cache.Save(templates); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err = cache.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].Repo != "rust-api" {
		t.Errorf("Load() = %v", got)
	}
}

func TestCacheStale(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, time.Hour)
	if err := cache.Save([]TemplateInfo{{Repo: "x"}}); err != nil {
		t.Fatal(err)
	}

	// Move the clock past the TTL.
	cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %v, want nil for stale cache", got)
	}
}

func TestCacheCorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(dir, time.Hour)
	got, err := cache.Load()
	if err != nil || got != nil {
		t.Errorf("Load() = %v, %v; want nil, nil for corrupt cache", got, err)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, time.Hour)
	if err := cache.Save([]TemplateInfo{{Repo: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got, _ := cache.Load(); got != nil {
		t.Errorf("Load() after Clear() = %v, want nil", got)
	}
	// Clearing an empty cache is fine.
	if err := cache.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

// staticDiscoverer returns a fixed result, or an error.
type staticDiscoverer struct {
	templates []TemplateInfo
	err       error
	calls     int
}

func (s *staticDiscoverer) Discover(ctx context.Context) ([]TemplateInfo, error) {
	s.calls++
	return s.templates, s.err
}

func (s *staticDiscoverer) Lookup(ctx context.Context, shorthand string) (*TemplateInfo, error) {
	return nil, nil
}

func TestCachedDiscovererServesFreshCache(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, time.Hour)
	inner := &staticDiscoverer{templates: []TemplateInfo{{Repo: "a"}}}
	d := NewCachedDiscoverer(inner, cache)

	// First call hits the network and fills the cache.
	if _, err := d.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Second call is served from the cache.
	if _, err := d.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedDiscovererStaleFallback(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, time.Hour)
	if err := cache.Save([]TemplateInfo{{Repo: "old"}}); err != nil {
		t.Fatal(err)
	}
	cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	inner := &staticDiscoverer{err: newError(APIFailed, "network down", nil)}
	d := NewCachedDiscoverer(inner, cache)

	got, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v, want stale fallback", err)
	}
	if len(got) != 1 || got[0].Repo != "old" {
		t.Errorf("Discover() = %v, want stale entry", got)
	}
}
