package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk/internal/client"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// recordedRequest is what the fake Zendesk saw for one call.
type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Body          string
	Authorization string
}

// fakeZendesk records every request and answers with a fixed status and body.
type fakeZendesk struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeZendesk(t *testing.T) *fakeZendesk {
	t.Helper()

	fake := &fakeZendesk{status: http.StatusOK, body: `{}`}
	fake.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method:        request.Method,
			Path:          request.URL.Path,
			Query:         request.URL.RawQuery,
			Body:          string(body),
			Authorization: request.Header.Get("Authorization"),
		})
		status, reply := fake.status, fake.body
		fake.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(reply))
	}))

	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeZendesk) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = status
	f.body = body
}

func (f *fakeZendesk) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeZendesk) last(t *testing.T) recordedRequest {
	t.Helper()

	requests := f.all()
	require.NotEmpty(t, requests)

	return requests[len(requests)-1]
}

func (f *fakeZendesk) config() *zendesk.Config {
	return &zendesk.Config{
		BaseURL:  f.server.URL,
		Username: "bob@acme.com",
		APIKey:   "k123",
	}
}

func (f *fakeZendesk) client(t *testing.T, configure ...func(*zendesk.Config)) *client.Client {
	t.Helper()

	config := f.config()
	for _, fn := range configure {
		fn(config)
	}

	c, err := client.New(config)
	require.NoError(t, err)

	return c
}

// sinkRecorder collects failures reported to the error sink.
type sinkRecorder struct {
	mu       sync.Mutex
	failures []zendesk.Failure
}

func (s *sinkRecorder) RecordFailure(_ context.Context, failure zendesk.Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, failure)
}

func (s *sinkRecorder) all() []zendesk.Failure {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]zendesk.Failure(nil), s.failures...)
}
