package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/zendesk/internal/auth"
	"github.com/fivetwenty-io/zendesk/internal/constants"
	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// cacheKind selects the memoization lifetime of a call.
type cacheKind int

const (
	cacheNone cacheKind = iota
	cacheDefault
	cacheViews
	cacheTicketFields
	cacheUsers
	cacheTalk
)

func (k cacheKind) ttl(ttls zendesk.CacheTTLs) time.Duration {
	switch k {
	case cacheViews:
		return ttls.Views
	case cacheTicketFields:
		return ttls.TicketFields
	case cacheUsers:
		return ttls.Users
	case cacheTalk:
		return ttls.Talk
	default:
		return ttls.Default
	}
}

// cacheKey scopes a GET to the credentials that made it: the effective
// username and the API key, or "anonymous".
func cacheKey(req *zdhttp.Request, identity auth.Identity) string {
	scope := "anonymous"
	if !identity.AnonymousOverride {
		scope = identity.EffectiveUsername() + ":" + identity.APIKey
	}

	sum := sha256.Sum256([]byte(req.Method + " " + req.FullURL() + " " + scope))

	return constants.CacheKeyPrefix + hex.EncodeToString(sum[:])
}

// memoizer serves successful GET responses from a Cache and collapses
// concurrent identical misses into one request. The shared request runs
// detached from any single caller; each caller waits on its own context.
type memoizer struct {
	cache  zendesk.Cache
	group  singleflight.Group
	stats  zendesk.CacheCounters
	logger zendesk.Logger
}

func newMemoizer(cache zendesk.Cache, logger zendesk.Logger) *memoizer {
	return &memoizer{cache: cache, logger: logger}
}

func (m *memoizer) fetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	successCodes []int,
	execute func(ctx context.Context) (*zendesk.RawResponse, error),
) (*zendesk.RawResponse, error) {
	entry, err := m.cache.Get(ctx, key)
	if err == nil {
		m.stats.Hit()

		status := entry.StatusCode
		if status == 0 {
			status = 200
		}

		return &zendesk.RawResponse{StatusCode: status, Body: entry.Data}, nil
	}

	m.stats.Miss()

	if len(successCodes) == 0 {
		successCodes = zdhttp.DefaultSuccessCodes
	}

	err = ctx.Err()
	if err != nil {
		return nil, zendesk.NewTransportError(err)
	}

	detached := context.WithoutCancel(ctx)

	results := m.group.DoChan(key, func() (interface{}, error) {
		raw, err := execute(detached)
		if err != nil {
			return nil, err
		}

		if slices.Contains(successCodes, raw.StatusCode) && json.Valid(raw.Body) {
			m.store(detached, key, ttl, raw)
		}

		return raw, nil
	})

	select {
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err //nolint:wrapcheck
		}

		raw, _ := result.Val.(*zendesk.RawResponse)

		return raw, nil
	case <-ctx.Done():
		return nil, zendesk.NewTransportError(ctx.Err())
	}
}

func (m *memoizer) store(ctx context.Context, key string, ttl time.Duration, raw *zendesk.RawResponse) {
	err := m.cache.Set(ctx, key, &zendesk.CacheEntry{
		Data:       raw.Body,
		StatusCode: raw.StatusCode,
		ExpiresAt:  time.Now().Add(ttl),
		ETag:       raw.Headers.Get("ETag"),
	})
	if err != nil {
		m.stats.Fail()

		if m.logger != nil {
			m.logger.Warn("Failed to store cached response", map[string]interface{}{"error": err.Error()})
		}

		return
	}

	m.stats.Store()
}
