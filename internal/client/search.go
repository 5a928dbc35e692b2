package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// SearchClient implements zendesk.SearchClient.
type SearchClient struct {
	client *Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(client *Client) *SearchClient {
	return &SearchClient{client: client}
}

// Search implements zendesk.SearchClient.Search.
func (c *SearchClient) Search(ctx context.Context, query string, page zendesk.PaginationSpec) (zendesk.Object, error) {
	if query == "" {
		return nil, zendesk.ErrQueryRequired
	}

	args := zendesk.NewArgs().Set("query", query).Merge(page.Args())

	results, err := c.client.object(ctx, call{method: http.MethodGet, route: "search", args: args})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	return results, nil
}

// TicketsByEmail implements zendesk.SearchClient.TicketsByEmail.
func (c *SearchClient) TicketsByEmail(ctx context.Context, email string) (zendesk.Object, error) {
	if email == "" {
		return nil, zendesk.ErrEmailRequired
	}

	return c.Search(ctx, "type:ticket requester:"+email, zendesk.DefaultPagination())
}

// RequestsByUser implements zendesk.SearchClient.RequestsByUser.
func (c *SearchClient) RequestsByUser(ctx context.Context, email string) (zendesk.Object, error) {
	if email == "" {
		return nil, zendesk.ErrEmailRequired
	}

	return c.Search(ctx, "type:request requester:"+email+" status:all", zendesk.DefaultPagination())
}
