package zendesk

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/zendesk/internal/constants"
)

// Cache stores memoized responses.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a memoized response body.
type CacheEntry struct {
	Data       []byte    `json:"data"`
	StatusCode int       `json:"status_code,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	ETag       string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its lifetime.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// CacheTTLs are the memoization lifetimes per endpoint family.
type CacheTTLs struct {
	Default      time.Duration `json:"default"       yaml:"default"`
	Views        time.Duration `json:"views"         yaml:"views"`
	TicketFields time.Duration `json:"ticket_fields" yaml:"ticket_fields"`
	Users        time.Duration `json:"users"         yaml:"users"`
	Talk         time.Duration `json:"talk"          yaml:"talk"`
}

// DefaultCacheTTLs returns the production lifetimes.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Default:      constants.DefaultCacheTTL,
		Views:        constants.ViewsCacheTTL,
		TicketFields: constants.TicketFieldsCacheTTL,
		Users:        constants.UsersCacheTTL,
		Talk:         constants.TalkCacheTTL,
	}
}

// DevelopmentCacheTTLs returns short lifetimes for every family.
func DevelopmentCacheTTLs() CacheTTLs {
	ttl := constants.DevelopmentCacheTTL

	return CacheTTLs{Default: ttl, Views: ttl, TicketFields: ttl, Users: ttl, Talk: ttl}
}

// MemoryCache is an in-process Cache bounded by entry count.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get returns the entry for key.
func (c *MemoryCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	if entry.Expired(time.Now()) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.Expired(time.Now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return nil, ErrCacheEntryExpired
	}

	return entry, nil
}

// Set stores entry under key, evicting the entry closest to expiry when full.
func (c *MemoryCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.entries[key] = entry

	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mu.Unlock()

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (c *MemoryCache) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DefaultCleanupInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}

func (c *MemoryCache) evictLocked() {
	var (
		victim string
		oldest time.Time
	)

	for key, entry := range c.entries {
		if victim == "" || entry.ExpiresAt.Before(oldest) {
			victim = key
			oldest = entry.ExpiresAt
		}
	}

	delete(c.entries, victim)
}

// CacheStats counts memoization outcomes.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	Errors int64 `json:"errors"`
}

// GetHitRate returns hits / (hits + misses), or 0 without lookups.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheCounters is a concurrency-safe CacheStats accumulator.
type CacheCounters struct {
	hits, misses, sets, errors atomic.Int64
}

// Hit records a cache hit.
func (c *CacheCounters) Hit() { c.hits.Add(1) }

// Miss records a cache miss.
func (c *CacheCounters) Miss() { c.misses.Add(1) }

// Store records a write.
func (c *CacheCounters) Store() { c.sets.Add(1) }

// Fail records a backend failure.
func (c *CacheCounters) Fail() { c.errors.Add(1) }

// Snapshot returns the current counts.
func (c *CacheCounters) Snapshot() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Sets:   c.sets.Load(),
		Errors: c.errors.Load(),
	}
}
