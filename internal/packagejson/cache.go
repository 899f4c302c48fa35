package packagejson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	cacheFileName = "version-cache.json"
	// DefaultCacheMaxAge is how long a looked-up version is reused.
	DefaultCacheMaxAge = 24 * time.Hour
)

// CacheEntry is one cached lookup result.
type CacheEntry struct {
	Version   string    `json:"version"`
	CheckedAt time.Time `json:"checked_at"`
}

// LoadCache reads the version cache from dir.
// Returns an empty cache if the file does not exist (first run).
func LoadCache(dir string) (map[string]CacheEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if os.IsNotExist(err) {
		return map[string]CacheEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	entries := map[string]CacheEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return entries, nil
}

// SaveCache writes the version cache to dir.
func SaveCache(dir string, entries map[string]CacheEntry) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// CachedLookup answers from a cache file in Dir while the entry is younger
// than MaxAge and asks Lookup otherwise. Cache read and write failures are
// ignored; they only cost a fresh lookup.
type CachedLookup struct {
	Lookup VersionLookup
	Dir    string
	MaxAge time.Duration // DefaultCacheMaxAge when zero

	now     func() time.Time
	once    sync.Once
	mu      sync.Mutex
	entries map[string]CacheEntry
}

func (c *CachedLookup) Latest(ctx context.Context, name string) (string, error) {
	c.once.Do(func() {
		if c.now == nil {
			c.now = time.Now
		}
		if c.MaxAge == 0 {
			c.MaxAge = DefaultCacheMaxAge
		}
		entries, err := LoadCache(c.Dir)
		if err != nil {
			entries = map[string]CacheEntry{}
		}
		c.entries = entries
	})

	c.mu.Lock()
	e, ok := c.entries[name]
	c.mu.Unlock()
	if ok && c.now().Sub(e.CheckedAt) <= c.MaxAge {
		return e.Version, nil
	}

	v, err := c.Lookup.Latest(ctx, name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = CacheEntry{Version: v, CheckedAt: c.now()}
	_ = SaveCache(c.Dir, c.entries)
	return v, nil
}
