package constants

import "errors"

// Configuration errors.
var (
	ErrNoSubdomain       = errors.New("no subdomain configured, use 'zendesk login' or --subdomain")
	ErrNoCredentials     = errors.New("no credentials configured, use 'zendesk login' first")
	ErrConfigKeyReadOnly = errors.New("configuration key cannot be set via config command")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidOutput     = errors.New("output must be table, json or yaml")
)

// Validation errors.
var (
	ErrInvalidID        = errors.New("invalid ID")
	ErrMissingArgument  = errors.New("missing required argument")
	ErrEmptyInput       = errors.New("input cannot be empty")
	ErrConfirmationDeny = errors.New("operation cancelled")
)
