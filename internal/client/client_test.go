package client_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk/internal/client"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

func basic(credentials string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := client.New(nil)
	require.ErrorIs(t, err, zendesk.ErrConfigRequired)

	_, err = client.New(&zendesk.Config{Username: "bob@acme.com", APIKey: "k123"})
	require.ErrorIs(t, err, zendesk.ErrSubdomainRequired)

	_, err = client.New(&zendesk.Config{Subdomain: "acme", Username: "bob@acme.com"})
	require.ErrorIs(t, err, zendesk.ErrCredentialsRequired)

	c, err := client.New(&zendesk.Config{Subdomain: "acme", Username: "bob@acme.com", APIKey: "k123"})
	require.NoError(t, err)
	assert.Equal(t, "bob@acme.com", c.Username())
	assert.Equal(t, zendesk.IdentityNormal, c.IdentityState())
}

func TestClient_AcmeScenario(t *testing.T) {
	t.Parallel()

	var got *zendesk.SendRequest

	sender := zendesk.SenderFunc(func(_ context.Context, req *zendesk.SendRequest) (*zendesk.RawResponse, error) {
		got = req

		return &zendesk.RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"tickets":[]}`)}, nil
	})

	c, err := client.New(&zendesk.Config{
		Subdomain: "acme",
		Username:  "bob@acme.com",
		APIKey:    "k123",
		Sender:    sender,
	})
	require.NoError(t, err)

	tickets, err := c.Tickets().List(context.Background(), zendesk.DefaultPagination())
	require.NoError(t, err)
	assert.Empty(t, tickets.Objects("tickets"))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "https://acme.zendesk.com/api/v2/tickets.json?per_page=100&page=1", got.URL)
	assert.Equal(t, basic("bob@acme.com/token:k123"), got.Headers["Authorization"])
	assert.Equal(t, "application/json", got.Headers["Content-Type"])
	assert.Nil(t, got.Body)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_TemporaryIdentity(t *testing.T) {
	t.Parallel()

	t.Run("one-shot override ends after the next call", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		c := fake.client(t)
		ctx := context.Background()

		c.SetTemporaryIdentity("alice@x.com", zendesk.ResetAfterNextCall)

		_, err := c.Users().Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, zendesk.IdentityNormal, c.IdentityState())

		_, err = c.Users().Me(ctx)
		require.NoError(t, err)

		requests := fake.all()
		require.Len(t, requests, 2)
		assert.Equal(t, basic("alice@x.com/token:k123"), requests[0].Authorization)
		assert.Equal(t, basic("bob@acme.com/token:k123"), requests[1].Authorization)
	})

	t.Run("one-shot override ends after a failed call", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		fake.respond(http.StatusForbidden, `{"error":{"title":"Forbidden","message":"You do not have access"}}`)

		c := fake.client(t)
		c.SetTemporaryIdentity("alice@x.com", zendesk.ResetAfterNextCall)

		_, err := c.Tickets().Show(context.Background(), 1)
		require.Error(t, err)
		assert.True(t, zendesk.IsForbidden(err))
		assert.Equal(t, zendesk.IdentityNormal, c.IdentityState())
	})

	t.Run("one-shot override ends after a build failure", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		c := fake.client(t)
		c.SetTemporaryAnonymous(zendesk.ResetAfterNextCall)

		_, err := c.Call(context.Background(), http.MethodPatch, "tickets/1", nil)
		require.ErrorIs(t, err, zendesk.ErrUnsupportedMethod)
		assert.Equal(t, zendesk.IdentityNormal, c.IdentityState())
		assert.Empty(t, fake.all())
	})

	t.Run("manual override persists until reset", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		c := fake.client(t)
		ctx := context.Background()

		c.SetTemporaryIdentity("alice@x.com", zendesk.ResetManual)

		for range 2 {
			_, err := c.Users().Me(ctx)
			require.NoError(t, err)
		}

		c.ResetIdentity()

		_, err := c.Users().Me(ctx)
		require.NoError(t, err)

		requests := fake.all()
		require.Len(t, requests, 3)
		assert.Equal(t, basic("alice@x.com/token:k123"), requests[0].Authorization)
		assert.Equal(t, basic("alice@x.com/token:k123"), requests[1].Authorization)
		assert.Equal(t, basic("bob@acme.com/token:k123"), requests[2].Authorization)
	})

	t.Run("anonymous override omits the header", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		c := fake.client(t)

		c.SetTemporaryAnonymous(zendesk.ResetAfterNextCall)

		_, err := c.HelpCenter().ListArticles(context.Background(), "en-us", zendesk.DefaultPagination())
		require.NoError(t, err)
		assert.Empty(t, fake.last(t).Authorization)
		assert.Equal(t, "/api/v2/help_center/en-us/articles.json", fake.last(t).Path)
	})

	t.Run("set auth replaces the primary identity", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		c := fake.client(t)
		c.SetAuth("carol@acme.com", "k999")

		_, err := c.Users().Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, basic("carol@acme.com/token:k999"), fake.last(t).Authorization)
		assert.Equal(t, "carol@acme.com", c.Username())
	})
}

func TestClient_Handles(t *testing.T) {
	t.Parallel()

	fake := newFakeZendesk(t)
	c := fake.client(t)
	ctx := context.Background()

	_, err := c.As("alice@x.com").Users().Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, basic("alice@x.com/token:k123"), fake.last(t).Authorization)

	anonymous := c.Anonymous()

	for range 2 {
		_, err = anonymous.HelpCenter().SearchArticles(ctx, "password")
		require.NoError(t, err)
		assert.Empty(t, fake.last(t).Authorization)
	}

	// The parent handle is untouched.
	assert.Equal(t, zendesk.IdentityNormal, c.IdentityState())

	_, err = c.Users().Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, basic("bob@acme.com/token:k123"), fake.last(t).Authorization)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_ErrorSink(t *testing.T) {
	t.Parallel()

	t.Run("status failure is reported once", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		fake.respond(http.StatusNotFound, `{"error":"RecordNotFound","description":"Not found"}`)

		sink := &sinkRecorder{}
		c := fake.client(t, func(config *zendesk.Config) { config.ErrorSink = sink })

		_, err := c.Tickets().Show(context.Background(), 404)
		require.Error(t, err)
		assert.True(t, zendesk.IsNotFound(err))
		assert.Contains(t, err.Error(), "getting ticket 404")

		failures := sink.all()
		require.Len(t, failures, 1)
		assert.Equal(t, "tickets/404", failures[0].Route)
		assert.Equal(t, http.MethodGet, failures[0].Method)
		assert.Equal(t, http.StatusNotFound, failures[0].StatusCode)
		assert.Equal(t, "Not found", failures[0].Message)
	})

	t.Run("success is not reported", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		sink := &sinkRecorder{}
		c := fake.client(t, func(config *zendesk.Config) { config.ErrorSink = sink })

		_, err := c.Groups().List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, sink.all())
	})

	t.Run("decode failure is reported once", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		fake.respond(http.StatusOK, "not-json")

		sink := &sinkRecorder{}
		c := fake.client(t, func(config *zendesk.Config) { config.ErrorSink = sink })

		_, err := c.Users().Me(context.Background())
		require.Error(t, err)
		assert.True(t, zendesk.IsDecode(err))
		assert.Len(t, sink.all(), 1)
	})

	t.Run("non-object body is a decode failure", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		fake.respond(http.StatusOK, `[1,2,3]`)

		sink := &sinkRecorder{}
		c := fake.client(t, func(config *zendesk.Config) { config.ErrorSink = sink })

		_, err := c.Users().Me(context.Background())
		require.Error(t, err)
		require.ErrorIs(t, err, zendesk.ErrNotAnObject)
		assert.True(t, zendesk.IsDecode(err))
		assert.Len(t, sink.all(), 1)
	})

	t.Run("build failure is not reported", func(t *testing.T) {
		t.Parallel()

		fake := newFakeZendesk(t)
		sink := &sinkRecorder{}
		c := fake.client(t, func(config *zendesk.Config) { config.ErrorSink = sink })

		_, err := c.Call(context.Background(), http.MethodGet, "tickets", zendesk.NewArgs().Set("filter", zendesk.Object{"a": 1}))
		require.ErrorIs(t, err, zendesk.ErrNestedQueryValue)
		assert.Empty(t, sink.all())
	})
}

func TestClient_Call(t *testing.T) {
	t.Parallel()

	fake := newFakeZendesk(t)
	fake.respond(http.StatusAccepted, `{"job_status":{"id":"abc"}}`)

	c := fake.client(t)

	result, err := c.Call(context.Background(), "put", "tickets/update_many",
		zendesk.NewArgs().Set("ids", "1,2").Set("ticket", zendesk.Object{"status": "solved"}),
		zendesk.WithoutSuffix(), zendesk.WithSuccessCodes(http.StatusAccepted))
	require.NoError(t, err)

	job, ok := result.Object("job_status")
	require.True(t, ok)
	assert.Equal(t, "abc", job.String("id"))

	last := fake.last(t)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/v2/tickets/update_many", last.Path)
	assert.JSONEq(t, `{"ids":"1,2","ticket":{"status":"solved"}}`, last.Body)

	// Without the success code override a 202 is a failure.
	_, err = c.Call(context.Background(), http.MethodPut, "tickets/update_many", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusAccepted, zendesk.StatusCode(err))
}

func TestClient_DisabledSuffix(t *testing.T) {
	t.Parallel()

	fake := newFakeZendesk(t)
	c := fake.client(t, func(config *zendesk.Config) { config.DisableDataSuffix = true })

	_, err := c.Tickets().Show(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/tickets/7", fake.last(t).Path)
}
