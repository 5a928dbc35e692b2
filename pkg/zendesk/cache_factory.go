package zendesk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/zendesk/internal/constants"
)

// CacheType names a memoization backend.
type CacheType string

// Supported backends.
const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeNATS   CacheType = "nats"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeNone   CacheType = "none"
)

// CacheConfig selects and configures the backend behind the memoizer.
//
// Setting Local on a shared backend (redis or nats) puts a process-local
// memory cache in front of it: hits are served locally first and remote hits
// are copied into the local level with their original expiry.
type CacheConfig struct {
	Type   CacheType          `json:"type"             yaml:"type"`
	Local  bool               `json:"local,omitempty"  yaml:"local,omitempty"`
	Memory *MemoryCacheConfig `json:"memory,omitempty" yaml:"memory,omitempty"`
	NATS   *NATSKVConfig      `json:"nats,omitempty"   yaml:"nats,omitempty"`
	Redis  *RedisCacheConfig  `json:"redis,omitempty"  yaml:"redis,omitempty"`
}

// MemoryCacheConfig sizes the in-process cache. CleanupInterval is a
// duration string such as "30s".
type MemoryCacheConfig struct {
	MaxSize         int    `json:"max_size"         yaml:"max_size"`
	CleanupInterval string `json:"cleanup_interval" yaml:"cleanup_interval"`
}

// DefaultCacheConfig returns a memory cache of DefaultCacheSize entries.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{Type: CacheTypeMemory, Memory: defaultMemoryConfig()}
}

func defaultMemoryConfig() *MemoryCacheConfig {
	return &MemoryCacheConfig{
		MaxSize:         constants.DefaultCacheSize,
		CleanupInterval: constants.DefaultCleanupInterval.String(),
	}
}

// NewCacheFromConfig creates the backend described by config. A nil config
// yields the default memory cache. Background work of the memory cache stops
// with ctx.
func NewCacheFromConfig(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	var (
		shared Cache
		err    error
	)

	switch config.Type {
	case CacheTypeMemory, "":
		return NewMemoryCacheFromConfig(ctx, config.Memory)
	case CacheTypeNone:
		return NewNoOpCache(), nil
	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSURLRequired
		}

		shared, err = NewNATSKVCache(config.NATS)
	case CacheTypeRedis:
		if config.Redis == nil {
			return nil, ErrRedisAddrRequired
		}

		shared, err = NewRedisCache(ctx, config.Redis)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}

	if err != nil {
		return nil, err
	}

	if !config.Local {
		return shared, nil
	}

	local, err := NewMemoryCacheFromConfig(ctx, config.Memory)
	if err != nil {
		return nil, err
	}

	return NewCacheChain(local, shared), nil
}

// NewMemoryCacheFromConfig creates a memory cache and starts its cleanup
// loop, which stops with ctx.
func NewMemoryCacheFromConfig(ctx context.Context, config *MemoryCacheConfig) (*MemoryCache, error) {
	if config == nil {
		config = defaultMemoryConfig()
	}

	interval := constants.DefaultCleanupInterval

	if config.CleanupInterval != "" {
		parsed, err := time.ParseDuration(config.CleanupInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing cleanup interval %q: %w", config.CleanupInterval, err)
		}

		interval = parsed
	}

	cache := NewMemoryCache(config.MaxSize)
	cache.StartCleanup(ctx, interval)

	return cache, nil
}

// NoOpCache never stores anything. It lets callers keep a non-nil Cache
// while memoization is switched off.
type NoOpCache struct{}

// NewNoOpCache creates a NoOpCache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(_ context.Context, _ string) (*CacheEntry, error) {
	return nil, ErrCacheMiss
}

// Set discards the entry.
func (c *NoOpCache) Set(_ context.Context, _ string, _ *CacheEntry) error { return nil }

// Delete is a no-op.
func (c *NoOpCache) Delete(_ context.Context, _ string) error { return nil }

// Clear is a no-op.
func (c *NoOpCache) Clear(_ context.Context) error { return nil }

// Has always reports false.
func (c *NoOpCache) Has(_ context.Context, _ string) bool { return false }

// CacheBuilder assembles a CacheConfig fluently.
type CacheBuilder struct {
	config CacheConfig
}

// NewCacheBuilder starts from a memory cache.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{config: CacheConfig{Type: CacheTypeMemory}}
}

// WithType selects the backend.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig sizes the memory cache, or the local level of a shared backend.
func (b *CacheBuilder) WithMemoryConfig(maxSize int, cleanupInterval string) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{MaxSize: maxSize, CleanupInterval: cleanupInterval}

	return b
}

// WithNATSConfig configures the NATS KV backend.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// WithRedisConfig configures the Redis backend.
func (b *CacheBuilder) WithRedisConfig(config *RedisCacheConfig) *CacheBuilder {
	b.config.Redis = config

	return b
}

// WithLocal fronts a shared backend with a memory cache.
func (b *CacheBuilder) WithLocal() *CacheBuilder {
	b.config.Local = true

	return b
}

// Config returns a copy of the assembled configuration.
func (b *CacheBuilder) Config() CacheConfig {
	return b.config
}

// Build creates the configured cache.
func (b *CacheBuilder) Build(ctx context.Context) (Cache, error) {
	config := b.config

	return NewCacheFromConfig(ctx, &config)
}

// CacheChain layers caches from fastest to slowest. Reads stop at the first
// hit and backfill the faster levels; writes go to every level.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain creates a chain over caches, fastest first.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{caches: caches}
}

// Get returns the entry from the fastest level holding it.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, faster := range c.caches[:i] {
			_ = faster.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set stores entry in every level.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(cache Cache) error { return cache.Set(ctx, key, entry) })
}

// Delete removes key from every level.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(cache Cache) error { return cache.Delete(ctx, key) })
}

// Clear empties every level.
func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(cache Cache) error { return cache.Clear(ctx) })
}

// Has reports whether any level holds key.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// each applies op to every level and joins the failures.
func (c *CacheChain) each(op func(Cache) error) error {
	var errs []error

	for _, cache := range c.caches {
		err := op(cache)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
