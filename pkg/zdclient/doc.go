// Package zdclient provides the primary entry point for constructing a
// Zendesk API client that implements the zendesk.Client interface.
//
// It layers account resolution, HTTP transport, token authentication and
// optional response caching on top of the resource interfaces and types
// defined in the zendesk package. Most applications should import zdclient to
// build a client, then use the returned zendesk.Client to access resource
// clients, for example Tickets(), Users(), HelpCenter(), etc.
//
// Quick start
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
//
//	  // The account may be given as "acme", "acme.zendesk.com" or a full URL.
//	  cli, err := zdclient.NewWithToken(ctx, "acme", "agent@acme.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or from ZENDESK_SUBDOMAIN, ZENDESK_USERNAME and ZENDESK_API_KEY:
//	  cli, err = zdclient.NewFromEnv(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  me, err := cli.Users().Me(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = me
//	}
//
// # Caching
//
// NewWithCache attaches a cache built from a zendesk.CacheConfig. NewFromEnv
// reads ZENDESK_CACHE ("memory", "redis", "nats" or "none") together with
// ZENDESK_REDIS_ADDR or ZENDESK_NATS_URL. Setting ZENDESK_DEV_MODE shortens
// every cache lifetime to a few seconds.
package zdclient
