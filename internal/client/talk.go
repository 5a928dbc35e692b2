package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// TalkClient implements zendesk.TalkClient. Every read is memoized with the Talk lifetime.
type TalkClient struct {
	client *Client
}

// NewTalkClient creates a new Talk client.
func NewTalkClient(client *Client) *TalkClient {
	return &TalkClient{client: client}
}

func (c *TalkClient) read(ctx context.Context, route string) (zendesk.Object, error) {
	return c.client.object(ctx, call{api: apiTalk, method: http.MethodGet, route: route, cache: cacheTalk})
}

// CurrentQueueActivity implements zendesk.TalkClient.CurrentQueueActivity.
func (c *TalkClient) CurrentQueueActivity(ctx context.Context) (zendesk.Object, error) {
	activity, err := c.read(ctx, "stats/current_queue_activity")
	if err != nil {
		return nil, fmt.Errorf("getting current queue activity: %w", err)
	}

	return activity, nil
}

// AccountOverview implements zendesk.TalkClient.AccountOverview.
func (c *TalkClient) AccountOverview(ctx context.Context) (zendesk.Object, error) {
	overview, err := c.read(ctx, "stats/account_overview")
	if err != nil {
		return nil, fmt.Errorf("getting account overview: %w", err)
	}

	return overview, nil
}

// AgentsActivity implements zendesk.TalkClient.AgentsActivity.
func (c *TalkClient) AgentsActivity(ctx context.Context) (zendesk.Object, error) {
	activity, err := c.read(ctx, "stats/agents_activity")
	if err != nil {
		return nil, fmt.Errorf("getting agents activity: %w", err)
	}

	return activity, nil
}

// PhoneNumbers implements zendesk.TalkClient.PhoneNumbers.
func (c *TalkClient) PhoneNumbers(ctx context.Context) (zendesk.Object, error) {
	numbers, err := c.read(ctx, "phone_numbers")
	if err != nil {
		return nil, fmt.Errorf("listing phone numbers: %w", err)
	}

	return numbers, nil
}
