package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// ChatClient implements zendesk.ChatClient. Chat routes carry no data suffix.
type ChatClient struct {
	client *Client
}

// NewChatClient creates a new chat client.
func NewChatClient(client *Client) *ChatClient {
	return &ChatClient{client: client}
}

func chatPath(id string) string {
	return "chats/" + url.PathEscape(id)
}

// List implements zendesk.ChatClient.List.
func (c *ChatClient) List(ctx context.Context, window zendesk.ChatPagination) (zendesk.Object, error) {
	chats, err := c.client.object(ctx, call{api: apiChat, method: http.MethodGet, route: "chats", args: window.Args(), noSuffix: true})
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}

	return chats, nil
}

// Show implements zendesk.ChatClient.Show.
func (c *ChatClient) Show(ctx context.Context, id string) (zendesk.Object, error) {
	chat, err := c.client.object(ctx, call{api: apiChat, method: http.MethodGet, route: chatPath(id), noSuffix: true})
	if err != nil {
		return nil, fmt.Errorf("getting chat %s: %w", id, err)
	}

	return chat, nil
}

// Search implements zendesk.ChatClient.Search.
func (c *ChatClient) Search(ctx context.Context, query string) (zendesk.Object, error) {
	if query == "" {
		return nil, zendesk.ErrQueryRequired
	}

	args := zendesk.NewArgs().Set("q", query)

	results, err := c.client.object(ctx, call{api: apiChat, method: http.MethodGet, route: "chats/search", args: args, noSuffix: true})
	if err != nil {
		return nil, fmt.Errorf("searching chats: %w", err)
	}

	return results, nil
}

// Delete implements zendesk.ChatClient.Delete.
func (c *ChatClient) Delete(ctx context.Context, id string) error {
	_, err := c.client.do(ctx, call{
		api:      apiChat,
		method:   http.MethodDelete,
		route:    chatPath(id),
		noSuffix: true,
		success:  zdhttp.DeleteSuccessCodes,
	})
	if err != nil {
		return fmt.Errorf("deleting chat %s: %w", id, err)
	}

	return nil
}
