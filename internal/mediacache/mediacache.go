// Package mediacache keeps remote media and page assets available offline.
//
// The cache is a versioned directory of content files keyed by normalized
// URL. HTML is fetched network-first with a cache fallback so stale pages
// never shadow fresh ones; everything else is cache-first. Streaming hosts
// that refuse range-less replays are bypassed entirely.
package mediacache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Version names the active cache generation. Bumping it orphans every
// previous generation; Open deletes those on startup.
const Version = "v5"

// Nature-session media sources. The video streams live from YouTube and is
// never cached (its host is bypassed); the ambient track caches normally.
const (
	NatureVideoURL = "https://www.youtube.com/watch?v=1ZYbU82GVz4"
	NatureAudioURL = "https://cdn.pixabay.com/download/audio/2022/01/09/audio_7b83b170f4.mp3?filename=chilling-waves-ambient-chill-out-music-for-relaxation-13880.mp3"
)

// Hosts whose responses must always come from the network.
var bypassHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"i.ytimg.com",
	"googleads.g.doubleclick.net",
	"pagead2.googlesyndication.com",
}

// Dev-server paths that must never be cached.
var bypassPathPrefixes = []string{"/@vite", "/__vite"}
var bypassPathSuffixes = []string{".hot-update.json", ".hot-update.js", "/sw.js"}

// Cache is safe for concurrent use. The memory layer in front of the disk
// files keeps repeated lookups of the same asset cheap.
type Cache struct {
	dir    string
	mem    *gocache.Cache
	client *http.Client
}

// Open prepares the cache directory for the current version and removes
// every sibling generation under root.
func Open(root string) (*Cache, error) {
	dir := filepath.Join(root, "media-"+Version)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading cache root: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() && strings.HasPrefix(name, "media-") && name != "media-"+Version {
			if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
				return nil, fmt.Errorf("removing stale cache %s: %w", name, err)
			}
		}
	}

	return &Cache{
		dir:    dir,
		mem:    gocache.New(30*time.Minute, 10*time.Minute),
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// SetClient swaps the HTTP client, mainly for tests.
func (c *Cache) SetClient(client *http.Client) { c.client = client }

// Dir returns the active generation's directory.
func (c *Cache) Dir() string { return c.dir }

// Normalize canonicalizes a URL for use as a cache key: the fragment is
// dropped and a trailing slash resolves to the directory index.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}
	u.Fragment = ""
	if strings.HasSuffix(u.Path, "/") || u.Path == "" {
		u.Path += "index.html"
	}
	return u.String(), nil
}

// Bypass reports whether the URL must skip the cache entirely.
func Bypass(u *url.URL) bool {
	for _, h := range bypassHosts {
		if u.Hostname() == h || strings.HasSuffix(u.Hostname(), "."+h) {
			return true
		}
	}
	for _, p := range bypassPathPrefixes {
		if strings.HasPrefix(u.Path, p) {
			return true
		}
	}
	for _, s := range bypassPathSuffixes {
		if strings.HasSuffix(u.Path, s) {
			return true
		}
	}
	return strings.Contains(u.Path, "/node_modules/.vite/")
}

// Precache fetches and stores each URL, skipping individual failures so
// one broken asset cannot abort warming the rest.
func (c *Cache) Precache(ctx context.Context, urls []string) (stored int, firstErr error) {
	for _, raw := range urls {
		if _, err := c.Fetch(ctx, raw); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", raw, err)
			}
			continue
		}
		stored++
	}
	return stored, firstErr
}

// Fetch returns the asset bytes, applying the HTML or asset strategy by
// the URL's extension.
func (c *Cache) Fetch(ctx context.Context, raw string) ([]byte, error) {
	norm, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(norm)
	if err != nil {
		return nil, err
	}
	if Bypass(u) {
		return c.download(ctx, norm)
	}
	if isHTML(u.Path) {
		return c.fetchNetworkFirst(ctx, norm)
	}
	return c.fetchCacheFirst(ctx, norm)
}

func isHTML(path string) bool {
	return strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm")
}

// fetchNetworkFirst prefers a live copy and quietly refreshes the cache;
// only an unreachable network serves the cached copy.
func (c *Cache) fetchNetworkFirst(ctx context.Context, key string) ([]byte, error) {
	body, err := c.download(ctx, key)
	if err == nil {
		c.put(key, body)
		return body, nil
	}
	if cached, ok := c.get(key); ok {
		return cached, nil
	}
	return nil, err
}

// fetchCacheFirst serves the stored copy when present and only stores
// successful downloads.
func (c *Cache) fetchCacheFirst(ctx context.Context, key string) ([]byte, error) {
	if cached, ok := c.get(key); ok {
		return cached, nil
	}
	body, err := c.download(ctx, key)
	if err != nil {
		return nil, err
	}
	c.put(key, body)
	return body, nil
}

func (c *Cache) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Cache) get(key string) ([]byte, bool) {
	if v, ok := c.mem.Get(key); ok {
		return v.([]byte), true
	}
	body, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	c.mem.SetDefault(key, body)
	return body, true
}

func (c *Cache) put(key string, body []byte) {
	c.mem.SetDefault(key, body)
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, body, 0644); err != nil {
		return
	}
	_ = os.Rename(tmp, c.path(key))
}

func (c *Cache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

// Clean removes the active generation from disk and empties the memory layer.
func (c *Cache) Clean() error {
	c.mem.Flush()
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing cache dir: %w", err)
	}
	return os.MkdirAll(c.dir, 0755)
}
