package client_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

type routeCase struct {
	name   string
	call   func(ctx context.Context, c zendesk.Client) error
	method string
	path   string
	query  string
	body   string
}

func ignore(_ zendesk.Object, err error) error {
	return err
}

//nolint:funlen,maintidx // Test functions can be longer for comprehensive testing
func supportRoutes() []routeCase {
	page2 := zendesk.DefaultPagination().WithPage(2)

	return []routeCase{
		{
			name:   "tickets list",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Tickets().List(ctx, page2)) },
			method: http.MethodGet, path: "/api/v2/tickets.json", query: "per_page=100&page=2",
		},
		{
			name:   "tickets requested by user",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Tickets().ListRequestedByUser(ctx, 12)) },
			method: http.MethodGet, path: "/api/v2/users/12/tickets/requested.json",
		},
		{
			name:   "tickets show many",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Tickets().ShowMany(ctx, []int64{1, 2, 3})) },
			method: http.MethodGet, path: "/api/v2/tickets/show_many.json", query: "ids=1%2C2%2C3",
		},
		{
			name: "tickets create",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.Tickets().Create(ctx, zendesk.TicketFromSubject("Help", "Broken", zendesk.TicketOptions{})))
			},
			method: http.MethodPost, path: "/api/v2/tickets.json",
			body: `{"ticket":{"subject":"Help","comment":{"body":"Broken"}}}`,
		},
		{
			name: "tickets create many",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.Tickets().CreateMany(ctx, []zendesk.Object{
					{"subject": "A"},
					zendesk.TicketFromSubject("B", "b", zendesk.TicketOptions{}),
				}))
			},
			method: http.MethodPost, path: "/api/v2/tickets/create_many.json",
			body: `{"tickets":[{"subject":"A"},{"subject":"B","comment":{"body":"b"}}]}`,
		},
		{
			name:   "tickets update",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Tickets().Update(ctx, 5, zendesk.Object{"status": "solved"})) },
			method: http.MethodPut, path: "/api/v2/tickets/5.json", body: `{"ticket":{"status":"solved"}}`,
		},
		{
			name:   "tickets delete",
			call:   func(ctx context.Context, c zendesk.Client) error { return c.Tickets().Delete(ctx, 5) },
			method: http.MethodDelete, path: "/api/v2/tickets/5.json",
		},
		{
			name:   "tickets add comment",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Tickets().AddComment(ctx, 5, "Done", true)) },
			method: http.MethodPut, path: "/api/v2/tickets/5.json", body: `{"ticket":{"comment":{"public":true,"body":"Done"}}}`,
		},
		{
			name:   "tickets comments",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Tickets().ListComments(ctx, 5)) },
			method: http.MethodGet, path: "/api/v2/tickets/5/comments.json",
		},
		{
			name:   "requests list",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Requests().List(ctx, zendesk.DefaultPagination())) },
			method: http.MethodGet, path: "/api/v2/requests.json", query: "per_page=100&page=1",
		},
		{
			name: "requests create",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.Requests().Create(ctx, zendesk.BuildRequest(zendesk.RequestFields{Subject: "Help", Comment: "Hi"})))
			},
			method: http.MethodPost, path: "/api/v2/requests.json", body: `{"request":{"subject":"Help","comment":{"body":"Hi"}}}`,
		},
		{
			name:   "requests add comment",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Requests().AddComment(ctx, 8, "Thanks")) },
			method: http.MethodPut, path: "/api/v2/requests/8.json", body: `{"request":{"comment":{"body":"Thanks"}}}`,
		},
		{
			name: "users list by group and role",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.Users().List(ctx, zendesk.UserListOptions{GroupID: 3, Role: "agent"}))
			},
			method: http.MethodGet, path: "/api/v2/groups/3/users.json", query: "per_page=100&page=1&role=agent",
		},
		{
			name: "users list by organization",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.Users().List(ctx, zendesk.UserListOptions{OrganizationID: 4}))
			},
			method: http.MethodGet, path: "/api/v2/organizations/4/users.json", query: "per_page=100&page=1",
		},
		{
			name:   "users related",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Users().Related(ctx, 9)) },
			method: http.MethodGet, path: "/api/v2/users/9/related.json",
		},
		{
			name: "users create",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.Users().Create(ctx, zendesk.BuildUser("Jane", "jane@example.com", "", nil)))
			},
			method: http.MethodPost, path: "/api/v2/users.json", body: `{"user":{"name":"Jane","email":"jane@example.com"}}`,
		},
		{
			name:   "users delete",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Users().Delete(ctx, 9)) },
			method: http.MethodDelete, path: "/api/v2/users/9.json",
		},
		{
			name:   "users set password",
			call:   func(ctx context.Context, c zendesk.Client) error { return c.Users().SetPassword(ctx, 9, "s3cret") },
			method: http.MethodPost, path: "/api/v2/users/9/password.json", body: `{"password":"s3cret"}`,
		},
		{
			name:   "users search by email",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Users().SearchByEmail(ctx, "jane@example.com")) },
			method: http.MethodGet, path: "/api/v2/users/search.json", query: "query=jane%40example.com",
		},
		{
			name:   "group memberships",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Groups().ListMemberships(ctx, 3)) },
			method: http.MethodGet, path: "/api/v2/groups/3/memberships.json",
		},
		{
			name:   "organizations show many",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Organizations().ShowMany(ctx, []int64{4, 5})) },
			method: http.MethodGet, path: "/api/v2/organizations/show_many.json", query: "ids=4%2C5",
		},
		{
			name:   "search tickets by email",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Search().TicketsByEmail(ctx, "jane@example.com")) },
			method: http.MethodGet, path: "/api/v2/search.json",
			query: "query=type%3Aticket+requester%3Ajane%40example.com&per_page=100&page=1",
		},
		{
			name:   "search requests by user",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Search().RequestsByUser(ctx, "jane@example.com")) },
			method: http.MethodGet, path: "/api/v2/search.json",
			query: "query=type%3Arequest+requester%3Ajane%40example.com+status%3Aall&per_page=100&page=1",
		},
		{
			name:   "view tickets",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Views().Tickets(ctx, 6, page2)) },
			method: http.MethodGet, path: "/api/v2/views/6/tickets.json", query: "per_page=100&page=2",
		},
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func subAPIRoutes() []routeCase {
	since := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	return []routeCase{
		{
			name:   "chat list",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Chat().List(ctx, zendesk.DefaultChatPagination())) },
			method: http.MethodGet, path: "/api/v2/chats", query: "limit=200",
		},
		{
			name:   "chat show",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Chat().Show(ctx, "1709.abc")) },
			method: http.MethodGet, path: "/api/v2/chats/1709.abc",
		},
		{
			name:   "chat search",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Chat().Search(ctx, "refund")) },
			method: http.MethodGet, path: "/api/v2/chats/search", query: "q=refund",
		},
		{
			name:   "chat delete",
			call:   func(ctx context.Context, c zendesk.Client) error { return c.Chat().Delete(ctx, "1709.abc") },
			method: http.MethodDelete, path: "/api/v2/chats/1709.abc",
		},
		{
			name: "help center categories",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.HelpCenter().ListCategories(ctx, "en-us", zendesk.DefaultPagination()))
			},
			method: http.MethodGet, path: "/api/v2/help_center/en-us/categories.json", query: "per_page=100&page=1",
		},
		{
			name:   "help center sections of category",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.HelpCenter().ListSections(ctx, "", 11)) },
			method: http.MethodGet, path: "/api/v2/help_center/categories/11/sections.json",
		},
		{
			name: "help center section articles",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.HelpCenter().ListSectionArticles(ctx, "de", 12, zendesk.DefaultPagination()))
			},
			method: http.MethodGet, path: "/api/v2/help_center/de/sections/12/articles.json", query: "per_page=100&page=1",
		},
		{
			name: "help center user articles",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.HelpCenter().ListUserArticles(ctx, 13, zendesk.DefaultPagination()))
			},
			method: http.MethodGet, path: "/api/v2/help_center/users/13/articles.json", query: "per_page=100&page=1",
		},
		{
			name:   "help center incremental articles",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.HelpCenter().IncrementalArticles(ctx, since)) },
			method: http.MethodGet, path: "/api/v2/help_center/incremental/articles.json", query: "start_time=1704164645",
		},
		{
			name: "help center create article",
			call: func(ctx context.Context, c zendesk.Client) error {
				return ignore(c.HelpCenter().CreateArticle(ctx, "en-us", 12,
					zendesk.ArticleFromTitle("Reset", "<p>Steps</p>", zendesk.ArticleOptions{})))
			},
			method: http.MethodPost, path: "/api/v2/help_center/en-us/sections/12/articles.json",
			body: `{"article":{"title":"Reset","body":"<p>Steps</p>"}}`,
		},
		{
			name:   "help center archive article",
			call:   func(ctx context.Context, c zendesk.Client) error { return c.HelpCenter().ArchiveArticle(ctx, 14) },
			method: http.MethodDelete, path: "/api/v2/help_center/articles/14.json",
		},
		{
			name:   "talk queue activity",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Talk().CurrentQueueActivity(ctx)) },
			method: http.MethodGet, path: "/api/v2/channels/voice/stats/current_queue_activity.json",
		},
		{
			name:   "talk agents activity",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Talk().AgentsActivity(ctx)) },
			method: http.MethodGet, path: "/api/v2/channels/voice/stats/agents_activity.json",
		},
		{
			name:   "talk phone numbers",
			call:   func(ctx context.Context, c zendesk.Client) error { return ignore(c.Talk().PhoneNumbers(ctx)) },
			method: http.MethodGet, path: "/api/v2/channels/voice/phone_numbers.json",
		},
	}
}

func TestResourceRoutes(t *testing.T) {
	t.Parallel()

	cases := append(supportRoutes(), subAPIRoutes()...)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := newFakeZendesk(t)
			c := fake.client(t)

			require.NoError(t, tc.call(context.Background(), c))

			last := fake.last(t)
			assert.Equal(t, tc.method, last.Method)
			assert.Equal(t, tc.path, last.Path)
			assert.Equal(t, tc.query, last.Query)

			if tc.body == "" {
				assert.Empty(t, last.Body)
			} else {
				assert.JSONEq(t, tc.body, last.Body)
			}
		})
	}
}

func TestResourceArgumentChecks(t *testing.T) {
	t.Parallel()

	fake := newFakeZendesk(t)
	c := fake.client(t)
	ctx := context.Background()

	_, err := c.Tickets().ShowMany(ctx, nil)
	require.ErrorIs(t, err, zendesk.ErrIDsRequired)

	_, err = c.Tickets().Create(ctx, nil)
	require.ErrorIs(t, err, zendesk.ErrPayloadRequired)

	_, err = c.Users().List(ctx, zendesk.UserListOptions{GroupID: 1, OrganizationID: 2})
	require.ErrorIs(t, err, zendesk.ErrConflictingUserFilter)

	_, err = c.Users().SearchByEmail(ctx, "")
	require.ErrorIs(t, err, zendesk.ErrEmailRequired)

	_, err = c.Search().Search(ctx, "", zendesk.DefaultPagination())
	require.ErrorIs(t, err, zendesk.ErrQueryRequired)

	_, err = c.HelpCenter().SearchArticles(ctx, "")
	require.ErrorIs(t, err, zendesk.ErrQueryRequired)

	assert.Empty(t, fake.all())
}

func TestHelpCenterReadsRequireOK(t *testing.T) {
	t.Parallel()

	fake := newFakeZendesk(t)
	fake.respond(http.StatusCreated, `{"article":{"id":1}}`)

	c := fake.client(t)

	_, err := c.HelpCenter().ShowArticle(context.Background(), "en-us", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusCreated, zendesk.StatusCode(err))

	created, err := c.HelpCenter().CreateArticle(context.Background(), "en-us", 2, zendesk.Object{"title": "x"})
	require.NoError(t, err)
	assert.Contains(t, created, "article")
}
