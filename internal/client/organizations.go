package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// OrganizationsClient implements zendesk.OrganizationsClient.
type OrganizationsClient struct {
	client *Client
}

// NewOrganizationsClient creates a new organizations client.
func NewOrganizationsClient(client *Client) *OrganizationsClient {
	return &OrganizationsClient{client: client}
}

func organizationPath(id int64) string {
	return "organizations/" + strconv.FormatInt(id, 10)
}

// List implements zendesk.OrganizationsClient.List.
func (c *OrganizationsClient) List(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
	orgs, err := c.client.object(ctx, call{method: http.MethodGet, route: "organizations", args: page.Args()})
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	return orgs, nil
}

// Show implements zendesk.OrganizationsClient.Show.
func (c *OrganizationsClient) Show(ctx context.Context, id int64) (zendesk.Object, error) {
	org, err := c.client.object(ctx, call{method: http.MethodGet, route: organizationPath(id)})
	if err != nil {
		return nil, fmt.Errorf("getting organization %d: %w", id, err)
	}

	return org, nil
}

// ShowMany implements zendesk.OrganizationsClient.ShowMany.
func (c *OrganizationsClient) ShowMany(ctx context.Context, ids []int64) (zendesk.Object, error) {
	if len(ids) == 0 {
		return nil, zendesk.ErrIDsRequired
	}

	args := zendesk.NewArgs().Set("ids", zendesk.JoinIDs(ids))

	orgs, err := c.client.object(ctx, call{method: http.MethodGet, route: "organizations/show_many", args: args})
	if err != nil {
		return nil, fmt.Errorf("getting organizations: %w", err)
	}

	return orgs, nil
}
