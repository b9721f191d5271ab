package typekit

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache defines the interface for cache backends. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found, nil and false otherwise.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the given TTL.
	// A TTL of 0 means no expiration.
	Set(key string, value interface{}, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all values from the cache.
	Clear()
}

// CacheStatistics contains cache performance metrics.
type CacheStatistics struct {
	Hits    int64
	Misses  int64
	Size    int64
	HitRate float64
}

// cacheEntry represents a single cache entry with expiration.
type cacheEntry struct {
	value      interface{}
	expiration time.Time
	hasExpiry  bool
}

// MemoryCache is a simple in-memory cache implementation.
// It is thread-safe and supports TTL-based expiration.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	hits    int64
	misses  int64
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*cacheEntry),
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return nil, false
	}

	if entry.hasExpiry && time.Now().After(entry.expiration) {
		c.mu.Lock()
		delete(c.entries, key)
		c.misses++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return entry.value, true
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{value: value}
	if ttl > 0 {
		entry.expiration = time.Now().Add(ttl)
		entry.hasExpiry = true
	}
	c.entries[key] = entry
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all values from the cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats returns cache statistics.
func (c *MemoryCache) Stats() CacheStatistics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CacheStatistics{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   int64(len(c.entries)),
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

// CachingTester decorates a FileTester with a result cache. Cache keys
// hash the path together with file size and mtime, so a modified file
// misses naturally. Failed results are never cached.
//
// The bare Tester stays cache-free; stack this decorator only when
// repeated classification of a stable tree is the workload.
type CachingTester struct {
	inner FileTester
	cache Cache
	ttl   time.Duration
}

// CacheOption configures a CachingTester.
type CacheOption func(*CachingTester)

// WithCacheTTL sets the lifetime of cached results. 0 means no expiration.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(t *CachingTester) {
		t.ttl = ttl
	}
}

// WithCache sets a custom cache backend.
func WithCache(cache Cache) CacheOption {
	return func(t *CachingTester) {
		t.cache = cache
	}
}

// NewCachingTester wraps inner with an in-memory result cache.
func NewCachingTester(inner FileTester, opts ...CacheOption) *CachingTester {
	t := &CachingTester{
		inner: inner,
		cache: NewMemoryCache(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TestFile implements FileTester.
func (t *CachingTester) TestFile(path string) TestResult {
	key, ok := t.cacheKey(path)
	if !ok {
		// Unstattable paths go straight through so the pipeline
		// produces its own error result.
		return t.inner.TestFile(path)
	}

	if value, hit := t.cache.Get(key); hit {
		if result, valid := value.(TestResult); valid {
			return result
		}
	}

	result := t.inner.TestFile(path)
	if !result.IsFailed() {
		t.cache.Set(key, result, t.ttl)
	}
	return result
}

// TestFiles implements FileTester, preserving input order.
func (t *CachingTester) TestFiles(paths []string) []TestResult {
	results := make([]TestResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, t.TestFile(path))
	}
	return results
}

// Invalidate drops any cached result for the file as it currently exists.
func (t *CachingTester) Invalidate(path string) {
	if key, ok := t.cacheKey(path); ok {
		t.cache.Delete(key)
	}
}

func (t *CachingTester) cacheKey(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	h := xxhash.New()
	fmt.Fprintf(h, "%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	return strconv.FormatUint(h.Sum64(), 16), true
}
