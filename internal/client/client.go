package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/fivetwenty-io/zendesk/internal/auth"
	"github.com/fivetwenty-io/zendesk/internal/constants"
	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

type api int

const (
	apiSupport api = iota
	apiChat
	apiHelpCenter
	apiTalk
)

// shared is the state common to a client and every handle derived from it.
type shared struct {
	httpClient *zdhttp.Client
	builders   map[api]*zdhttp.Builder
	memo       *memoizer
	ttls       zendesk.CacheTTLs
	sink       zendesk.ErrorSink
	logger     zendesk.Logger
}

// Client implements the zendesk.Client interface.
type Client struct {
	shared   *shared
	identity *auth.Controller

	// Resource clients
	tickets       *TicketsClient
	requests      *RequestsClient
	users         *UsersClient
	groups        *GroupsClient
	organizations *OrganizationsClient
	search        *SearchClient
	views         *ViewsClient
	ticketFields  *TicketFieldsClient
	chat          *ChatClient
	helpCenter    *HelpCenterClient
	talk          *TalkClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *zendesk.Config) []zdhttp.Option {
	var httpOpts []zdhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, zdhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, zdhttp.WithDebug(true))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, zdhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, zdhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Sender != nil {
		httpOpts = append(httpOpts, zdhttp.WithSender(config.Sender))
	}

	return httpOpts
}

// New creates a new Zendesk API client.
func New(config *zendesk.Config) (*Client, error) {
	if config == nil {
		return nil, zendesk.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	host := config.Host()
	suffix := config.Suffix()

	state := &shared{
		httpClient: zdhttp.NewClient(createHTTPClientOptions(config)...),
		builders: map[api]*zdhttp.Builder{
			apiSupport:    zdhttp.NewBuilder(host+constants.APIPath, suffix, config.UserAgent),
			apiChat:       zdhttp.NewBuilder(host+constants.APIPath, "", config.UserAgent),
			apiHelpCenter: zdhttp.NewBuilder(host+constants.HelpCenterPath, suffix, config.UserAgent),
			apiTalk:       zdhttp.NewBuilder(host+constants.TalkPath, suffix, config.UserAgent),
		},
		ttls:   config.TTLs(),
		sink:   config.ErrorSink,
		logger: config.Logger,
	}

	if config.Cache != nil {
		state.memo = newMemoizer(config.Cache, config.Logger)
	}

	return newHandle(state, auth.NewController(config.Username, config.APIKey)), nil
}

func newHandle(state *shared, identity *auth.Controller) *Client {
	client := &Client{shared: state, identity: identity}

	// Initialize resource clients
	client.initializeResourceClients()

	return client
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.tickets = NewTicketsClient(c)
	c.requests = NewRequestsClient(c)
	c.users = NewUsersClient(c)
	c.groups = NewGroupsClient(c)
	c.organizations = NewOrganizationsClient(c)
	c.search = NewSearchClient(c)
	c.views = NewViewsClient(c)
	c.ticketFields = NewTicketFieldsClient(c)
	c.chat = NewChatClient(c)
	c.helpCenter = NewHelpCenterClient(c)
	c.talk = NewTalkClient(c)
}

// As returns a handle that authenticates every call as username.
func (c *Client) As(username string) zendesk.Client { //nolint:ireturn
	return newHandle(c.shared, auth.NewController(username, c.identity.APIKey()))
}

// Anonymous returns a handle that sends every call without authentication.
func (c *Client) Anonymous() zendesk.Client { //nolint:ireturn
	identity := auth.NewController(c.identity.Username(), c.identity.APIKey())
	identity.SetTemporaryAnonymous(zendesk.ResetManual)

	return newHandle(c.shared, identity)
}

// SetAuth implements zendesk.IdentityClient.SetAuth.
func (c *Client) SetAuth(username, apiKey string) {
	c.identity.SetAuth(username, apiKey)
}

// Username implements zendesk.IdentityClient.Username.
func (c *Client) Username() string {
	return c.identity.Username()
}

// SetTemporaryIdentity implements zendesk.IdentityClient.SetTemporaryIdentity.
func (c *Client) SetTemporaryIdentity(username string, policy zendesk.ResetPolicy) {
	c.identity.SetTemporaryIdentity(username, policy)
}

// SetTemporaryAnonymous implements zendesk.IdentityClient.SetTemporaryAnonymous.
func (c *Client) SetTemporaryAnonymous(policy zendesk.ResetPolicy) {
	c.identity.SetTemporaryAnonymous(policy)
}

// ResetIdentity implements zendesk.IdentityClient.ResetIdentity.
func (c *Client) ResetIdentity() {
	c.identity.ResetIdentity()
}

// IdentityState implements zendesk.IdentityClient.IdentityState.
func (c *Client) IdentityState() zendesk.IdentityState {
	return c.identity.State()
}

// CacheStats returns memoization counters, or zero stats without a cache.
func (c *Client) CacheStats() zendesk.CacheStats {
	if c.shared.memo == nil {
		return zendesk.CacheStats{}
	}

	return c.shared.memo.stats.Snapshot()
}

// Call implements zendesk.Client.Call.
func (c *Client) Call(ctx context.Context, method, route string, args *zendesk.Args, opts ...zendesk.CallOption) (zendesk.Object, error) {
	options := zendesk.NewCallOptions(opts...)

	return c.object(ctx, call{
		api:      apiSupport,
		method:   method,
		route:    route,
		args:     args,
		noSuffix: options.NoSuffix,
		success:  options.SuccessCodes,
	})
}

// Tickets implements zendesk.CoreResourceClients.Tickets.
func (c *Client) Tickets() zendesk.TicketsClient { //nolint:ireturn
	return c.tickets
}

// Requests implements zendesk.CoreResourceClients.Requests.
func (c *Client) Requests() zendesk.RequestsClient { //nolint:ireturn
	return c.requests
}

// Users implements zendesk.CoreResourceClients.Users.
func (c *Client) Users() zendesk.UsersClient { //nolint:ireturn
	return c.users
}

// Groups implements zendesk.CoreResourceClients.Groups.
func (c *Client) Groups() zendesk.GroupsClient { //nolint:ireturn
	return c.groups
}

// Organizations implements zendesk.CoreResourceClients.Organizations.
func (c *Client) Organizations() zendesk.OrganizationsClient { //nolint:ireturn
	return c.organizations
}

// Search implements zendesk.CoreResourceClients.Search.
func (c *Client) Search() zendesk.SearchClient { //nolint:ireturn
	return c.search
}

// Views implements zendesk.CoreResourceClients.Views.
func (c *Client) Views() zendesk.ViewsClient { //nolint:ireturn
	return c.views
}

// TicketFields implements zendesk.CoreResourceClients.TicketFields.
func (c *Client) TicketFields() zendesk.TicketFieldsClient { //nolint:ireturn
	return c.ticketFields
}

// Chat implements zendesk.SubAPIClients.Chat.
func (c *Client) Chat() zendesk.ChatClient { //nolint:ireturn
	return c.chat
}

// HelpCenter implements zendesk.SubAPIClients.HelpCenter.
func (c *Client) HelpCenter() zendesk.HelpCenterClient { //nolint:ireturn
	return c.helpCenter
}

// Talk implements zendesk.SubAPIClients.Talk.
func (c *Client) Talk() zendesk.TalkClient { //nolint:ireturn
	return c.talk
}

// call describes one API call before it is built.
type call struct {
	api      api
	method   string
	route    string
	args     *zendesk.Args
	noSuffix bool
	success  []int
	cache    cacheKind
}

// do runs the shared pipeline: build, execute (or memoize), normalize.
// The identity controller observes exactly one completed call per do.
func (c *Client) do(ctx context.Context, op call) (interface{}, error) {
	identity := c.identity.Current()

	req, err := c.shared.builders[op.api].Build(op.route, op.args, op.method, identity, !op.noSuffix)
	if err != nil {
		c.identity.AfterCall()

		return nil, err
	}

	var raw *zendesk.RawResponse

	if c.shared.memo != nil && op.cache != cacheNone && req.Method == http.MethodGet {
		key := cacheKey(req, identity)
		raw, err = c.shared.memo.fetch(ctx, key, op.cache.ttl(c.shared.ttls), op.success, func(ctx context.Context) (*zendesk.RawResponse, error) {
			return c.shared.httpClient.Execute(ctx, req)
		})

		c.identity.AfterCall()
	} else {
		raw, err = c.shared.httpClient.Execute(ctx, req, c.identity.AfterCall)
	}

	value, err := zdhttp.Normalize(raw, err, op.success...)
	if err != nil {
		c.recordFailure(ctx, req, err)

		return nil, err
	}

	return value, nil
}

// object runs the pipeline and requires a JSON object (or empty body) as result.
func (c *Client) object(ctx context.Context, op call) (zendesk.Object, error) {
	value, err := c.do(ctx, op)
	if err != nil {
		return nil, err
	}

	obj, err := zendesk.AsObject(value)
	if err != nil {
		decodeErr := zendesk.NewDecodeError(0, nil, err)
		c.shared.recordFailure(ctx, op.route, op.method, decodeErr)

		return nil, decodeErr
	}

	return obj, nil
}

func (c *Client) recordFailure(ctx context.Context, req *zdhttp.Request, err error) {
	c.shared.recordFailure(ctx, req.Route, req.Method, err)
}

func (s *shared) recordFailure(ctx context.Context, route, method string, err error) {
	if s.sink == nil {
		return
	}

	failure := zendesk.Failure{Route: route, Method: method, Err: err, Message: err.Error()}

	var zerr *zendesk.Error
	if errors.As(err, &zerr) {
		failure.StatusCode = zerr.StatusCode
		failure.Message = zerr.Message
	}

	s.sink.RecordFailure(ctx, failure)
}
