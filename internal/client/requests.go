package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// RequestsClient implements zendesk.RequestsClient.
type RequestsClient struct {
	client *Client
}

// NewRequestsClient creates a new requests client.
func NewRequestsClient(client *Client) *RequestsClient {
	return &RequestsClient{client: client}
}

func requestPath(id int64) string {
	return "requests/" + strconv.FormatInt(id, 10)
}

// List implements zendesk.RequestsClient.List.
func (c *RequestsClient) List(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
	requests, err := c.client.object(ctx, call{method: http.MethodGet, route: "requests", args: page.Args()})
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	return requests, nil
}

// Show implements zendesk.RequestsClient.Show.
func (c *RequestsClient) Show(ctx context.Context, id int64) (zendesk.Object, error) {
	request, err := c.client.object(ctx, call{method: http.MethodGet, route: requestPath(id)})
	if err != nil {
		return nil, fmt.Errorf("getting request %d: %w", id, err)
	}

	return request, nil
}

// Create implements zendesk.RequestsClient.Create.
func (c *RequestsClient) Create(ctx context.Context, request zendesk.Object) (zendesk.Object, error) {
	if len(request) == 0 {
		return nil, zendesk.ErrPayloadRequired
	}

	args := zendesk.ArgsFromMap(zendesk.RequestFromPayload(request))

	created, err := c.client.object(ctx, call{method: http.MethodPost, route: "requests", args: args})
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return created, nil
}

// Update implements zendesk.RequestsClient.Update.
func (c *RequestsClient) Update(ctx context.Context, id int64, request zendesk.Object) (zendesk.Object, error) {
	args := zendesk.ArgsFromMap(zendesk.RequestFromPayload(request))

	updated, err := c.client.object(ctx, call{method: http.MethodPut, route: requestPath(id), args: args})
	if err != nil {
		return nil, fmt.Errorf("updating request %d: %w", id, err)
	}

	return updated, nil
}

// AddComment implements zendesk.RequestsClient.AddComment.
func (c *RequestsClient) AddComment(ctx context.Context, id int64, text string) (zendesk.Object, error) {
	return c.Update(ctx, id, zendesk.BuildRequest(zendesk.RequestFields{Comment: text}))
}
