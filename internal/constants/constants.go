package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as credential checks.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultNATSTimeout bounds connecting to a NATS server.
	DefaultNATSTimeout = 5 * time.Second
)

// Retry limits. Retries are opt-in; these apply once enabled.
const (
	// DefaultRetryMax is the retry count the CLI applies when --retry is set.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Zendesk API layout.
const (
	// APIPath is the path prefix of the Support API.
	APIPath = "/api/v2"

	// HelpCenterPath is the path prefix of the Help Center API.
	HelpCenterPath = "/api/v2/help_center"

	// TalkPath is the path prefix of the Talk API.
	TalkPath = "/api/v2/channels/voice"

	// TokenUserSuffix is appended to the username for API token authentication.
	TokenUserSuffix = "/token"

	// ContentTypeJSON is sent with every request.
	ContentTypeJSON = "application/json"
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the lifetime of memoized responses without a specific TTL.
	DefaultCacheTTL = 60 * time.Second

	// ViewsCacheTTL is the lifetime of memoized views.
	ViewsCacheTTL = time.Hour

	// TicketFieldsCacheTTL is the lifetime of memoized ticket fields.
	TicketFieldsCacheTTL = time.Hour

	// UsersCacheTTL is the lifetime of memoized users.
	UsersCacheTTL = time.Hour

	// TalkCacheTTL is the lifetime of memoized Talk statistics.
	TalkCacheTTL = 60 * time.Second

	// DevelopmentCacheTTL replaces every lifetime in development mode.
	DevelopmentCacheTTL = 5 * time.Second

	// DefaultCleanupInterval is how often the memory cache drops expired entries.
	DefaultCleanupInterval = time.Minute

	// DefaultNATSBucket is the JetStream KV bucket used for memoization.
	DefaultNATSBucket = "zendesk_cache"

	// DefaultRedisPrefix namespaces memoized keys in Redis.
	DefaultRedisPrefix = "zendesk:"

	// CacheKeyPrefix prefixes hashed memoization keys.
	CacheKeyPrefix = "zd."
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// DescriptionDisplayLength is the length for displaying subjects and descriptions.
	DescriptionDisplayLength = 60
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)
