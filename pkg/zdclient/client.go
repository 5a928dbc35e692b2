package zdclient

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/zendesk/internal/client"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// Environment variables read by NewFromEnv.
const (
	EnvSubdomain = "ZENDESK_SUBDOMAIN"
	EnvUsername  = "ZENDESK_USERNAME"
	EnvAPIKey    = "ZENDESK_API_KEY"
	EnvCache     = "ZENDESK_CACHE"
	EnvRedisAddr = "ZENDESK_REDIS_ADDR"
	EnvNATSURL   = "ZENDESK_NATS_URL"
	EnvDevMode   = "ZENDESK_DEV_MODE"
)

const zendeskDomain = ".zendesk.com"

// New creates a new Zendesk API client.
func New(_ context.Context, config *zendesk.Config) (zendesk.Client, error) { //nolint:ireturn
	if config == nil {
		return nil, zendesk.ErrConfigRequired
	}

	err := resolveAccount(config)
	if err != nil {
		return nil, err
	}

	if config.Cache != nil && config.CacheTTLs == nil && isDevelopmentEnvironment() {
		ttls := zendesk.DevelopmentCacheTTLs()
		config.CacheTTLs = &ttls
	}

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// resolveAccount accepts "acme", "acme.zendesk.com" or a URL as the subdomain.
// Hosts outside zendesk.com become the base URL.
func resolveAccount(config *zendesk.Config) error {
	account := strings.TrimSpace(config.Subdomain)
	if config.BaseURL != "" || (!strings.Contains(account, ".") && !strings.Contains(account, "://")) {
		config.Subdomain = account

		return nil
	}

	if !strings.Contains(account, "://") {
		account = "https://" + account
	}

	parsed, err := url.Parse(account)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%w: cannot parse %q", zendesk.ErrSubdomainRequired, config.Subdomain)
	}

	host := parsed.Hostname()
	if strings.HasSuffix(host, zendeskDomain) && parsed.Scheme == "https" && parsed.Port() == "" {
		config.Subdomain = strings.TrimSuffix(host, zendeskDomain)

		return nil
	}

	config.Subdomain = ""
	config.BaseURL = parsed.Scheme + "://" + parsed.Host

	return nil
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	return cast.ToBool(os.Getenv(EnvDevMode))
}

// NewWithToken creates a new client for an account using API token authentication.
func NewWithToken(ctx context.Context, subdomain, username, apiKey string) (zendesk.Client, error) { //nolint:ireturn
	return New(ctx, &zendesk.Config{
		Subdomain: subdomain,
		Username:  username,
		APIKey:    apiKey,
	})
}

// NewWithCache creates a new client whose read-mostly endpoints are memoized
// in the cache described by cacheConfig.
func NewWithCache(ctx context.Context, config *zendesk.Config, cacheConfig *zendesk.CacheConfig) (zendesk.Client, error) { //nolint:ireturn
	if config == nil {
		return nil, zendesk.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	cache, err := zendesk.NewCacheFromConfig(ctx, cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	config.Cache = cache

	return New(ctx, config)
}

// NewFromEnv creates a new client from ZENDESK_* environment variables.
func NewFromEnv(ctx context.Context) (zendesk.Client, error) { //nolint:ireturn
	config := &zendesk.Config{
		Subdomain: os.Getenv(EnvSubdomain),
		Username:  os.Getenv(EnvUsername),
		APIKey:    os.Getenv(EnvAPIKey),
	}

	cacheType := zendesk.CacheType(strings.ToLower(os.Getenv(EnvCache)))
	if cacheType == "" {
		return New(ctx, config)
	}

	cacheConfig := &zendesk.CacheConfig{Type: cacheType}

	switch cacheType { //nolint:exhaustive
	case zendesk.CacheTypeRedis:
		cacheConfig.Redis = &zendesk.RedisCacheConfig{Addr: os.Getenv(EnvRedisAddr)}
	case zendesk.CacheTypeNATS:
		cacheConfig.NATS = &zendesk.NATSKVConfig{URL: os.Getenv(EnvNATSURL)}
	}

	return NewWithCache(ctx, config, cacheConfig)
}
