package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// UsersClient implements zendesk.UsersClient.
type UsersClient struct {
	client *Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(client *Client) *UsersClient {
	return &UsersClient{client: client}
}

func userPath(id int64) string {
	return "users/" + strconv.FormatInt(id, 10)
}

// List implements zendesk.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts zendesk.UserListOptions) (zendesk.Object, error) {
	route := "users"

	switch {
	case opts.GroupID != 0 && opts.OrganizationID != 0:
		return nil, zendesk.ErrConflictingUserFilter
	case opts.GroupID != 0:
		route = groupPath(opts.GroupID) + "/users"
	case opts.OrganizationID != 0:
		route = organizationPath(opts.OrganizationID) + "/users"
	}

	args := opts.Page.Args().SetIf(opts.Role != "", "role", opts.Role)

	users, err := c.client.object(ctx, call{method: http.MethodGet, route: route, args: args})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

// Show implements zendesk.UsersClient.Show.
func (c *UsersClient) Show(ctx context.Context, id int64) (zendesk.Object, error) {
	user, err := c.client.object(ctx, call{method: http.MethodGet, route: userPath(id), cache: cacheUsers})
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}

	return user, nil
}

// ShowMany implements zendesk.UsersClient.ShowMany.
func (c *UsersClient) ShowMany(ctx context.Context, ids []int64) (zendesk.Object, error) {
	if len(ids) == 0 {
		return nil, zendesk.ErrIDsRequired
	}

	args := zendesk.NewArgs().Set("ids", zendesk.JoinIDs(ids))

	users, err := c.client.object(ctx, call{method: http.MethodGet, route: "users/show_many", args: args, cache: cacheUsers})
	if err != nil {
		return nil, fmt.Errorf("getting users: %w", err)
	}

	return users, nil
}

// Related implements zendesk.UsersClient.Related.
func (c *UsersClient) Related(ctx context.Context, id int64) (zendesk.Object, error) {
	related, err := c.client.object(ctx, call{method: http.MethodGet, route: userPath(id) + "/related", cache: cacheUsers})
	if err != nil {
		return nil, fmt.Errorf("getting related information of user %d: %w", id, err)
	}

	return related, nil
}

// Me implements zendesk.UsersClient.Me.
func (c *UsersClient) Me(ctx context.Context) (zendesk.Object, error) {
	me, err := c.client.object(ctx, call{method: http.MethodGet, route: "users/me"})
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return me, nil
}

// Create implements zendesk.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, user zendesk.Object) (zendesk.Object, error) {
	if len(user) == 0 {
		return nil, zendesk.ErrPayloadRequired
	}

	args := zendesk.ArgsFromMap(zendesk.UserFromPayload(user))

	created, err := c.client.object(ctx, call{method: http.MethodPost, route: "users", args: args})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return created, nil
}

// Update implements zendesk.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, id int64, user zendesk.Object) (zendesk.Object, error) {
	args := zendesk.ArgsFromMap(zendesk.UserFromPayload(user))

	updated, err := c.client.object(ctx, call{method: http.MethodPut, route: userPath(id), args: args})
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}

	return updated, nil
}

// Delete implements zendesk.UsersClient.Delete. Zendesk answers with the deleted user.
func (c *UsersClient) Delete(ctx context.Context, id int64) (zendesk.Object, error) {
	deleted, err := c.client.object(ctx, call{
		method:  http.MethodDelete,
		route:   userPath(id),
		success: zdhttp.DeleteSuccessCodes,
	})
	if err != nil {
		return nil, fmt.Errorf("deleting user %d: %w", id, err)
	}

	return deleted, nil
}

// SetPassword implements zendesk.UsersClient.SetPassword.
func (c *UsersClient) SetPassword(ctx context.Context, id int64, password string) error {
	args := zendesk.NewArgs().Set("password", password)

	_, err := c.client.do(ctx, call{method: http.MethodPost, route: userPath(id) + "/password", args: args})
	if err != nil {
		return fmt.Errorf("setting password of user %d: %w", id, err)
	}

	return nil
}

// SearchByEmail implements zendesk.UsersClient.SearchByEmail.
func (c *UsersClient) SearchByEmail(ctx context.Context, email string) (zendesk.Object, error) {
	if email == "" {
		return nil, zendesk.ErrEmailRequired
	}

	args := zendesk.NewArgs().Set("query", email)

	users, err := c.client.object(ctx, call{method: http.MethodGet, route: "users/search", args: args})
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	return users, nil
}
