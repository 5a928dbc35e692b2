package zdclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk/pkg/zdclient"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

func newMeServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)

		if request.URL.Path != "/api/v2/users/me.json" && request.URL.Path != "/api/v2/views.json" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = writer.Write([]byte(`{"user":{"id":1,"email":"bob@acme.com"},"views":[]}`))
	}))

	t.Cleanup(server.Close)

	return server, hits
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := zdclient.New(context.Background(), nil)
		require.ErrorIs(t, err, zendesk.ErrConfigRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := zdclient.New(context.Background(), &zendesk.Config{Subdomain: "acme"})
		require.ErrorIs(t, err, zendesk.ErrCredentialsRequired)
	})

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := zdclient.New(context.Background(), &zendesk.Config{
			Subdomain: "acme",
			Username:  "bob@acme.com",
			APIKey:    "k123",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "bob@acme.com", client.Username())
	})
}

func TestNew_AccountResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		account   string
		subdomain string
		baseURL   string
	}{
		{name: "bare subdomain", account: "acme", subdomain: "acme"},
		{name: "host", account: "acme.zendesk.com", subdomain: "acme"},
		{name: "url", account: "https://acme.zendesk.com/", subdomain: "acme"},
		{name: "custom host", account: "http://localhost:8080/api", baseURL: "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := &zendesk.Config{Subdomain: tt.account, Username: "bob@acme.com", APIKey: "k123"}

			_, err := zdclient.New(context.Background(), config)
			require.NoError(t, err)
			assert.Equal(t, tt.subdomain, config.Subdomain)
			assert.Equal(t, tt.baseURL, config.BaseURL)
		})
	}
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server, _ := newMeServer(t)

	client, err := zdclient.NewWithToken(context.Background(), server.URL, "bob@acme.com", "k123")
	require.NoError(t, err)

	me, err := client.Users().Me(context.Background())
	require.NoError(t, err)

	user, ok := me.Object("user")
	require.True(t, ok)
	assert.Equal(t, "bob@acme.com", user.String("email"))
}

func TestNewWithCache(t *testing.T) {
	t.Parallel()

	server, hits := newMeServer(t)
	redisServer := miniredis.RunT(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	client, err := zdclient.NewWithCache(ctx,
		&zendesk.Config{BaseURL: server.URL, Username: "bob@acme.com", APIKey: "k123"},
		&zendesk.CacheConfig{
			Type:  zendesk.CacheTypeRedis,
			Redis: &zendesk.RedisCacheConfig{Addr: redisServer.Addr(), Prefix: "zdclient:"},
		})
	require.NoError(t, err)

	for range 3 {
		_, err = client.Views().List(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), hits.Load())
	assert.Len(t, redisServer.Keys(), 1)
}

func TestNewWithCache_InvalidCache(t *testing.T) {
	t.Parallel()

	_, err := zdclient.NewWithCache(context.Background(),
		&zendesk.Config{Subdomain: "acme", Username: "bob@acme.com", APIKey: "k123"},
		&zendesk.CacheConfig{Type: zendesk.CacheTypeRedis})
	require.ErrorIs(t, err, zendesk.ErrRedisAddrRequired)

	_, err = zdclient.NewWithCache(context.Background(), nil, nil)
	require.ErrorIs(t, err, zendesk.ErrConfigRequired)
}

//nolint:paralleltest // t.Setenv cannot be combined with t.Parallel
func TestNewFromEnv(t *testing.T) {
	server, hits := newMeServer(t)

	t.Setenv(zdclient.EnvSubdomain, server.URL)
	t.Setenv(zdclient.EnvUsername, "bob@acme.com")
	t.Setenv(zdclient.EnvAPIKey, "k123")
	t.Setenv(zdclient.EnvCache, "memory")
	t.Setenv(zdclient.EnvDevMode, "true")

	client, err := zdclient.NewFromEnv(context.Background())
	require.NoError(t, err)

	for range 2 {
		_, err = client.Views().List(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), hits.Load())
}

//nolint:paralleltest // t.Setenv cannot be combined with t.Parallel
func TestNewFromEnv_Missing(t *testing.T) {
	t.Setenv(zdclient.EnvSubdomain, "")
	t.Setenv(zdclient.EnvUsername, "")
	t.Setenv(zdclient.EnvAPIKey, "")
	t.Setenv(zdclient.EnvCache, "")

	_, err := zdclient.NewFromEnv(context.Background())
	require.ErrorIs(t, err, zendesk.ErrSubdomainRequired)
}

//nolint:paralleltest // t.Setenv cannot be combined with t.Parallel
func TestNewFromEnv_NATSWithoutURL(t *testing.T) {
	t.Setenv(zdclient.EnvSubdomain, "acme")
	t.Setenv(zdclient.EnvUsername, "bob@acme.com")
	t.Setenv(zdclient.EnvAPIKey, "k123")
	t.Setenv(zdclient.EnvCache, "nats")
	t.Setenv(zdclient.EnvNATSURL, "")

	_, err := zdclient.NewFromEnv(context.Background())
	require.ErrorIs(t, err, zendesk.ErrNATSURLRequired)
}
