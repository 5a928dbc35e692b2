package zendesk

import (
	"context"
	"strings"
	"time"
)

// IdentityClient controls which identity authenticates the next calls.
type IdentityClient interface {
	// SetAuth replaces the primary credentials.
	SetAuth(username, apiKey string)
	// Username returns the primary username.
	Username() string
	// SetTemporaryIdentity authenticates as username instead of the primary user.
	SetTemporaryIdentity(username string, policy ResetPolicy)
	// SetTemporaryAnonymous sends calls without an Authorization header.
	SetTemporaryAnonymous(policy ResetPolicy)
	// ResetIdentity drops any active override.
	ResetIdentity()
	// IdentityState reports the current override state.
	IdentityState() IdentityState
}

// CoreResourceClients provides access to the Support API resource clients.
type CoreResourceClients interface {
	Tickets() TicketsClient
	Requests() RequestsClient
	Users() UsersClient
	Groups() GroupsClient
	Organizations() OrganizationsClient
	Search() SearchClient
	Views() ViewsClient
	TicketFields() TicketFieldsClient
}

// SubAPIClients provides access to the Chat, Help Center and Talk APIs.
type SubAPIClients interface {
	Chat() ChatClient
	HelpCenter() HelpCenterClient
	Talk() TalkClient
}

// Client is a Zendesk API client.
type Client interface {
	IdentityClient
	CoreResourceClients
	SubAPIClients

	// As returns a handle that authenticates every call as username. The
	// handle shares transport, cache and configuration with its parent.
	As(username string) Client
	// Anonymous returns a handle that sends every call without authentication.
	Anonymous() Client
	// Call performs a raw call against the Support API.
	Call(ctx context.Context, method, route string, args *Args, opts ...CallOption) (Object, error)
}

// TicketsClient defines operations for tickets.
type TicketsClient interface {
	List(ctx context.Context, page PaginationSpec) (Object, error)
	ListRequestedByUser(ctx context.Context, userID int64) (Object, error)
	Show(ctx context.Context, id int64) (Object, error)
	ShowMany(ctx context.Context, ids []int64) (Object, error)
	Create(ctx context.Context, ticket Object) (Object, error)
	CreateMany(ctx context.Context, tickets []Object) (Object, error)
	Update(ctx context.Context, id int64, ticket Object) (Object, error)
	Delete(ctx context.Context, id int64) error
	AddComment(ctx context.Context, id int64, text string, public bool) (Object, error)
	ListComments(ctx context.Context, id int64) (Object, error)
}

// RequestsClient defines operations for end-user requests.
type RequestsClient interface {
	List(ctx context.Context, page PaginationSpec) (Object, error)
	Show(ctx context.Context, id int64) (Object, error)
	Create(ctx context.Context, request Object) (Object, error)
	Update(ctx context.Context, id int64, request Object) (Object, error)
	AddComment(ctx context.Context, id int64, text string) (Object, error)
}

// UserListOptions filters a user listing. GroupID and OrganizationID are exclusive.
type UserListOptions struct {
	GroupID        int64
	OrganizationID int64
	Role           string
	Page           PaginationSpec
}

// UsersClient defines operations for users.
type UsersClient interface {
	List(ctx context.Context, opts UserListOptions) (Object, error)
	Show(ctx context.Context, id int64) (Object, error)
	ShowMany(ctx context.Context, ids []int64) (Object, error)
	Related(ctx context.Context, id int64) (Object, error)
	Me(ctx context.Context) (Object, error)
	Create(ctx context.Context, user Object) (Object, error)
	Update(ctx context.Context, id int64, user Object) (Object, error)
	Delete(ctx context.Context, id int64) (Object, error)
	SetPassword(ctx context.Context, id int64, password string) error
	SearchByEmail(ctx context.Context, email string) (Object, error)
}

// GroupsClient defines operations for agent groups.
type GroupsClient interface {
	List(ctx context.Context) (Object, error)
	Show(ctx context.Context, id int64) (Object, error)
	ListMemberships(ctx context.Context, groupID int64) (Object, error)
}

// OrganizationsClient defines operations for organizations.
type OrganizationsClient interface {
	List(ctx context.Context, page PaginationSpec) (Object, error)
	Show(ctx context.Context, id int64) (Object, error)
	ShowMany(ctx context.Context, ids []int64) (Object, error)
}

// SearchClient defines operations for the unified search endpoint.
type SearchClient interface {
	Search(ctx context.Context, query string, page PaginationSpec) (Object, error)
	TicketsByEmail(ctx context.Context, email string) (Object, error)
	RequestsByUser(ctx context.Context, email string) (Object, error)
}

// ViewsClient defines operations for ticket views.
type ViewsClient interface {
	List(ctx context.Context) (Object, error)
	Count(ctx context.Context, id int64) (Object, error)
	Tickets(ctx context.Context, id int64, page PaginationSpec) (Object, error)
}

// TicketFieldsClient defines operations for ticket fields.
type TicketFieldsClient interface {
	List(ctx context.Context) (Object, error)
	Show(ctx context.Context, id int64) (Object, error)
}

// ChatClient defines operations for chat transcripts.
type ChatClient interface {
	List(ctx context.Context, window ChatPagination) (Object, error)
	Show(ctx context.Context, id string) (Object, error)
	Search(ctx context.Context, query string) (Object, error)
	Delete(ctx context.Context, id string) error
}

// HelpCenterClient defines operations for the Help Center knowledge base.
// An empty locale uses the account default.
type HelpCenterClient interface {
	ListCategories(ctx context.Context, locale string, page PaginationSpec) (Object, error)
	ShowCategory(ctx context.Context, locale string, id int64) (Object, error)
	ListSections(ctx context.Context, locale string, categoryID int64) (Object, error)
	ShowSection(ctx context.Context, locale string, id int64) (Object, error)
	ListArticles(ctx context.Context, locale string, page PaginationSpec) (Object, error)
	ListSectionArticles(ctx context.Context, locale string, sectionID int64, page PaginationSpec) (Object, error)
	ListCategoryArticles(ctx context.Context, locale string, categoryID int64, page PaginationSpec) (Object, error)
	ListUserArticles(ctx context.Context, userID int64, page PaginationSpec) (Object, error)
	IncrementalArticles(ctx context.Context, startTime time.Time) (Object, error)
	ShowArticle(ctx context.Context, locale string, id int64) (Object, error)
	SearchArticles(ctx context.Context, query string) (Object, error)
	CreateArticle(ctx context.Context, locale string, sectionID int64, article Object) (Object, error)
	ArchiveArticle(ctx context.Context, id int64) error
}

// TalkClient defines operations for Talk (voice) statistics.
type TalkClient interface {
	CurrentQueueActivity(ctx context.Context) (Object, error)
	AccountOverview(ctx context.Context) (Object, error)
	AgentsActivity(ctx context.Context) (Object, error)
	PhoneNumbers(ctx context.Context) (Object, error)
}

// CallOptions tunes a raw call.
type CallOptions struct {
	NoSuffix     bool
	SuccessCodes []int
}

// CallOption customizes CallOptions.
type CallOption func(*CallOptions)

// WithoutSuffix omits the data suffix (".json") from the request URL.
func WithoutSuffix() CallOption {
	return func(o *CallOptions) { o.NoSuffix = true }
}

// WithSuccessCodes replaces the set of statuses treated as success.
func WithSuccessCodes(codes ...int) CallOption {
	return func(o *CallOptions) { o.SuccessCodes = codes }
}

// NewCallOptions applies opts to the zero options.
func NewCallOptions(opts ...CallOption) CallOptions {
	var options CallOptions
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// DefaultDataSuffix is appended to Support, Help Center and Talk routes.
const DefaultDataSuffix = ".json"

// Config represents client configuration for building a zendesk.Client.
//
// # Authentication
//
// Every call uses API token authentication: the Authorization header is
// "Basic " + base64(Username + "/token:" + APIKey). Temporary identity
// overrides replace Username for one or more calls; anonymous overrides omit
// the header.
//
// # Timeouts and retries
//
// HTTPTimeout bounds each attempt. Retries are disabled by default; when
// RetryMax > 0, connection errors, 429 and 5xx responses are retried with
// exponential backoff between RetryWaitMin and RetryWaitMax.
type Config struct {
	// Subdomain: the account subdomain, "acme" for https://acme.zendesk.com.
	Subdomain string
	// BaseURL: overrides the https://{Subdomain}.zendesk.com host, e.g. for tests.
	BaseURL string
	// Username: the agent email used for token authentication.
	Username string
	// APIKey: the API token.
	APIKey string

	// DataSuffix: appended to routes; DefaultDataSuffix when empty.
	DataSuffix string
	// DisableDataSuffix: never append a suffix.
	DisableDataSuffix bool

	// HTTPTimeout: per-attempt timeout. Zero means no timeout beyond the context.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures. Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and helpers.
	Logger Logger
	// UserAgent: sent as the User-Agent header when set.
	UserAgent string

	// Sender: replaces the default retrying HTTP sender.
	Sender Sender
	// ErrorSink: receives one Failure per failed call.
	ErrorSink ErrorSink

	// Cache: enables memoization of read-mostly endpoints when set.
	Cache Cache
	// CacheTTLs: per-endpoint lifetimes; DefaultCacheTTLs when nil.
	CacheTTLs *CacheTTLs
}

// Host returns the account host without a trailing slash.
func (c *Config) Host() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}

	return "https://" + c.Subdomain + ".zendesk.com"
}

// Suffix returns the data suffix appended to routes.
func (c *Config) Suffix() string {
	switch {
	case c.DisableDataSuffix:
		return ""
	case c.DataSuffix == "":
		return DefaultDataSuffix
	default:
		return c.DataSuffix
	}
}

// TTLs returns the configured cache lifetimes or the defaults.
func (c *Config) TTLs() CacheTTLs {
	if c.CacheTTLs == nil {
		return DefaultCacheTTLs()
	}

	return *c.CacheTTLs
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Subdomain == "" && c.BaseURL == "" {
		return ErrSubdomainRequired
	}

	if c.Username == "" || c.APIKey == "" {
		return ErrCredentialsRequired
	}

	return nil
}
