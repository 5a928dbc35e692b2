// Package zendesk provides types, interfaces, and helpers for working with the
// Zendesk REST API (Support, Chat, Help Center and Talk).
//
// # Overview
//
// The zendesk package defines the call arguments (Args), the decoded response
// shape (Object), the error model, pagination helpers, payload builders and
// the resource-oriented client interfaces (e.g., TicketsClient, UsersClient).
// A concrete implementation of these clients is provided by the zdclient
// package, which wires configuration, transport, authentication and caching.
// Most consumers should import zdclient to construct a client and then
// interact with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/zendesk/pkg/zdclient"
//	  "github.com/fivetwenty-io/zendesk/pkg/zendesk"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := zdclient.New(ctx, &zendesk.Config{
//	    Subdomain: "acme",
//	    Username:  "agent@acme.com",
//	    APIKey:    "token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of tickets, 50 at a time
//	  tickets, err := cli.Tickets().List(ctx, zendesk.DefaultPagination().WithPerPage(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = tickets
//	}
//
// # Identity overrides
//
// Every call authenticates with an API token. A client can temporarily act on
// behalf of another user, or drop authentication entirely, for the next call
// only or until ResetIdentity is called:
//
//	cli.SetTemporaryIdentity("end-user@acme.com", zendesk.ResetAfterNextCall)
//	_, err := cli.Requests().List(ctx, zendesk.DefaultPagination())
//
// For concurrent use prefer the scoped handles returned by As and Anonymous,
// which carry their own identity state and share everything else.
//
// # Pagination
//
// BuildPagination produces the per_page/page/sort_by/sort_order arguments
// accepted by list endpoints. FetchAllPages and StreamPages walk next_page
// links until the collection is exhausted:
//
//	all, err := zendesk.FetchAllPages(ctx, func(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
//	  return cli.Tickets().List(ctx, page)
//	}, "tickets", zendesk.DefaultPaginationOptions())
//
// # Errors
//
// Failed calls return *Error, classified by ErrorKind. Helpers such as
// IsNotFound, IsUnauthorized and IsRateLimited branch on common Zendesk
// failures, and an ErrorSink can be configured to observe every failure.
//
// # Caching
//
// Read-mostly endpoints (Talk statistics, views, ticket fields, users) can be
// memoized through a Cache. Memory, NATS JetStream KV and Redis backends are
// available through NewCacheFromConfig.
package zendesk
