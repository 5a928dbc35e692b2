package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// TicketsClient implements zendesk.TicketsClient.
type TicketsClient struct {
	client *Client
}

// NewTicketsClient creates a new tickets client.
func NewTicketsClient(client *Client) *TicketsClient {
	return &TicketsClient{client: client}
}

func ticketPath(id int64) string {
	return "tickets/" + strconv.FormatInt(id, 10)
}

// List implements zendesk.TicketsClient.List.
func (c *TicketsClient) List(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
	tickets, err := c.client.object(ctx, call{method: http.MethodGet, route: "tickets", args: page.Args()})
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	return tickets, nil
}

// ListRequestedByUser implements zendesk.TicketsClient.ListRequestedByUser.
func (c *TicketsClient) ListRequestedByUser(ctx context.Context, userID int64) (zendesk.Object, error) {
	route := userPath(userID) + "/tickets/requested"

	tickets, err := c.client.object(ctx, call{method: http.MethodGet, route: route})
	if err != nil {
		return nil, fmt.Errorf("listing tickets requested by user %d: %w", userID, err)
	}

	return tickets, nil
}

// Show implements zendesk.TicketsClient.Show.
func (c *TicketsClient) Show(ctx context.Context, id int64) (zendesk.Object, error) {
	ticket, err := c.client.object(ctx, call{method: http.MethodGet, route: ticketPath(id)})
	if err != nil {
		return nil, fmt.Errorf("getting ticket %d: %w", id, err)
	}

	return ticket, nil
}

// ShowMany implements zendesk.TicketsClient.ShowMany.
func (c *TicketsClient) ShowMany(ctx context.Context, ids []int64) (zendesk.Object, error) {
	if len(ids) == 0 {
		return nil, zendesk.ErrIDsRequired
	}

	args := zendesk.NewArgs().Set("ids", zendesk.JoinIDs(ids))

	tickets, err := c.client.object(ctx, call{method: http.MethodGet, route: "tickets/show_many", args: args})
	if err != nil {
		return nil, fmt.Errorf("getting tickets: %w", err)
	}

	return tickets, nil
}

// Create implements zendesk.TicketsClient.Create.
func (c *TicketsClient) Create(ctx context.Context, ticket zendesk.Object) (zendesk.Object, error) {
	if len(ticket) == 0 {
		return nil, zendesk.ErrPayloadRequired
	}

	args := zendesk.ArgsFromMap(zendesk.TicketFromPayload(ticket))

	created, err := c.client.object(ctx, call{method: http.MethodPost, route: "tickets", args: args})
	if err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	return created, nil
}

// CreateMany implements zendesk.TicketsClient.CreateMany. The result holds a job_status.
func (c *TicketsClient) CreateMany(ctx context.Context, tickets []zendesk.Object) (zendesk.Object, error) {
	if len(tickets) == 0 {
		return nil, zendesk.ErrPayloadRequired
	}

	payload := make([]zendesk.Object, len(tickets))
	for i, ticket := range tickets {
		if inner, ok := ticket.Object("ticket"); ok && len(ticket) == 1 {
			ticket = inner
		}

		payload[i] = ticket
	}

	args := zendesk.NewArgs().Set("tickets", payload)

	job, err := c.client.object(ctx, call{method: http.MethodPost, route: "tickets/create_many", args: args})
	if err != nil {
		return nil, fmt.Errorf("creating tickets: %w", err)
	}

	return job, nil
}

// Update implements zendesk.TicketsClient.Update.
func (c *TicketsClient) Update(ctx context.Context, id int64, ticket zendesk.Object) (zendesk.Object, error) {
	args := zendesk.ArgsFromMap(zendesk.TicketFromPayload(ticket))

	updated, err := c.client.object(ctx, call{method: http.MethodPut, route: ticketPath(id), args: args})
	if err != nil {
		return nil, fmt.Errorf("updating ticket %d: %w", id, err)
	}

	return updated, nil
}

// Delete implements zendesk.TicketsClient.Delete.
func (c *TicketsClient) Delete(ctx context.Context, id int64) error {
	_, err := c.client.do(ctx, call{
		method:  http.MethodDelete,
		route:   ticketPath(id),
		success: zdhttp.DeleteSuccessCodes,
	})
	if err != nil {
		return fmt.Errorf("deleting ticket %d: %w", id, err)
	}

	return nil
}

// AddComment implements zendesk.TicketsClient.AddComment.
func (c *TicketsClient) AddComment(ctx context.Context, id int64, text string, public bool) (zendesk.Object, error) {
	args := zendesk.ArgsFromMap(zendesk.TicketComment(text, public))

	updated, err := c.client.object(ctx, call{method: http.MethodPut, route: ticketPath(id), args: args})
	if err != nil {
		return nil, fmt.Errorf("commenting on ticket %d: %w", id, err)
	}

	return updated, nil
}

// ListComments implements zendesk.TicketsClient.ListComments.
func (c *TicketsClient) ListComments(ctx context.Context, id int64) (zendesk.Object, error) {
	comments, err := c.client.object(ctx, call{method: http.MethodGet, route: ticketPath(id) + "/comments"})
	if err != nil {
		return nil, fmt.Errorf("listing comments of ticket %d: %w", id, err)
	}

	return comments, nil
}
