package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// ViewsClient implements zendesk.ViewsClient.
type ViewsClient struct {
	client *Client
}

// NewViewsClient creates a new views client.
func NewViewsClient(client *Client) *ViewsClient {
	return &ViewsClient{client: client}
}

func viewPath(id int64) string {
	return "views/" + strconv.FormatInt(id, 10)
}

// List implements zendesk.ViewsClient.List.
func (c *ViewsClient) List(ctx context.Context) (zendesk.Object, error) {
	views, err := c.client.object(ctx, call{method: http.MethodGet, route: "views", cache: cacheViews})
	if err != nil {
		return nil, fmt.Errorf("listing views: %w", err)
	}

	return views, nil
}

// Count implements zendesk.ViewsClient.Count.
func (c *ViewsClient) Count(ctx context.Context, id int64) (zendesk.Object, error) {
	count, err := c.client.object(ctx, call{method: http.MethodGet, route: viewPath(id) + "/count", cache: cacheViews})
	if err != nil {
		return nil, fmt.Errorf("counting view %d: %w", id, err)
	}

	return count, nil
}

// Tickets implements zendesk.ViewsClient.Tickets.
func (c *ViewsClient) Tickets(ctx context.Context, id int64, page zendesk.PaginationSpec) (zendesk.Object, error) {
	tickets, err := c.client.object(ctx, call{method: http.MethodGet, route: viewPath(id) + "/tickets", args: page.Args()})
	if err != nil {
		return nil, fmt.Errorf("listing tickets of view %d: %w", id, err)
	}

	return tickets, nil
}

// TicketFieldsClient implements zendesk.TicketFieldsClient.
type TicketFieldsClient struct {
	client *Client
}

// NewTicketFieldsClient creates a new ticket fields client.
func NewTicketFieldsClient(client *Client) *TicketFieldsClient {
	return &TicketFieldsClient{client: client}
}

// List implements zendesk.TicketFieldsClient.List.
func (c *TicketFieldsClient) List(ctx context.Context) (zendesk.Object, error) {
	fields, err := c.client.object(ctx, call{method: http.MethodGet, route: "ticket_fields", cache: cacheTicketFields})
	if err != nil {
		return nil, fmt.Errorf("listing ticket fields: %w", err)
	}

	return fields, nil
}

// Show implements zendesk.TicketFieldsClient.Show.
func (c *TicketFieldsClient) Show(ctx context.Context, id int64) (zendesk.Object, error) {
	route := "ticket_fields/" + strconv.FormatInt(id, 10)

	field, err := c.client.object(ctx, call{method: http.MethodGet, route: route, cache: cacheTicketFields})
	if err != nil {
		return nil, fmt.Errorf("getting ticket field %d: %w", id, err)
	}

	return field, nil
}
