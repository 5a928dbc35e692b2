package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// GroupsClient implements zendesk.GroupsClient.
type GroupsClient struct {
	client *Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(client *Client) *GroupsClient {
	return &GroupsClient{client: client}
}

func groupPath(id int64) string {
	return "groups/" + strconv.FormatInt(id, 10)
}

// List implements zendesk.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context) (zendesk.Object, error) {
	groups, err := c.client.object(ctx, call{method: http.MethodGet, route: "groups", cache: cacheDefault})
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	return groups, nil
}

// Show implements zendesk.GroupsClient.Show.
func (c *GroupsClient) Show(ctx context.Context, id int64) (zendesk.Object, error) {
	group, err := c.client.object(ctx, call{method: http.MethodGet, route: groupPath(id), cache: cacheDefault})
	if err != nil {
		return nil, fmt.Errorf("getting group %d: %w", id, err)
	}

	return group, nil
}

// ListMemberships implements zendesk.GroupsClient.ListMemberships.
func (c *GroupsClient) ListMemberships(ctx context.Context, groupID int64) (zendesk.Object, error) {
	memberships, err := c.client.object(ctx, call{method: http.MethodGet, route: groupPath(groupID) + "/memberships"})
	if err != nil {
		return nil, fmt.Errorf("listing memberships of group %d: %w", groupID, err)
	}

	return memberships, nil
}
