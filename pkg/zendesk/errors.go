package zendesk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	// ErrorKindTransport means the request never produced an HTTP response.
	ErrorKindTransport ErrorKind = iota + 1
	// ErrorKindHTTPStatus means the server answered with a status outside the success set.
	ErrorKindHTTPStatus
	// ErrorKindDecode means the server answered successfully with a body that is not JSON.
	ErrorKindDecode
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindHTTPStatus:
		return "http_status"
	case ErrorKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every API call that failed after a request was built.
type Error struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	Body       []byte    `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrorKindHTTPStatus:
		if e.Message != "" {
			return fmt.Sprintf("zendesk: status %d: %s", e.StatusCode, e.Message)
		}

		return fmt.Sprintf("zendesk: status %d", e.StatusCode)
	case ErrorKindDecode:
		return fmt.Sprintf("zendesk: decoding response (status %d): %s", e.StatusCode, e.Message)
	default:
		return "zendesk: transport: " + e.Message
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a failure that happened before any response was received.
func NewTransportError(err error) *Error {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}

	return &Error{Kind: ErrorKindTransport, Message: msg, Err: err}
}

// NewHTTPStatusError builds an error for a response outside the success set.
// The message is taken from the Zendesk error body when one can be parsed.
func NewHTTPStatusError(statusCode int, body []byte) *Error {
	zerr := &Error{
		Kind:       ErrorKindHTTPStatus,
		Message:    http.StatusText(statusCode),
		StatusCode: statusCode,
		Body:       body,
	}

	apiErr, err := ParseErrorBody(body)
	if err == nil {
		zerr.Err = apiErr

		if msg := apiErr.Message(); msg != "" {
			zerr.Message = msg
		}
	}

	return zerr
}

// NewDecodeError builds an error for a successful response whose body is not JSON.
func NewDecodeError(statusCode int, body []byte, err error) *Error {
	msg := "invalid JSON"
	if err != nil {
		msg = err.Error()
	}

	return &Error{Kind: ErrorKindDecode, Message: msg, StatusCode: statusCode, Body: body, Err: err}
}

// APIError is the error document returned by Zendesk.
//
// Zendesk uses two shapes:
//
//	{"error": "RecordNotFound", "description": "Not found"}
//	{"error": {"title": "Forbidden", "message": "You do not have access"}}
type APIError struct {
	Code        string                 `json:"code"                  yaml:"code"`
	Title       string                 `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"     yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message()
	if e.Code != "" && msg != e.Code {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}

	return msg
}

// Message returns the most descriptive text available.
func (e *APIError) Message() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Title != "":
		return e.Title
	default:
		return e.Code
	}
}

type errorEnvelope struct {
	Error       json.RawMessage        `json:"error"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details"`
}

type nestedError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ParseErrorBody parses a Zendesk error response.
func ParseErrorBody(data []byte) (*APIError, error) {
	var envelope errorEnvelope

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error body: %w", err)
	}

	if len(envelope.Error) == 0 {
		return nil, ErrNoErrorDocument
	}

	apiErr := &APIError{Description: envelope.Description, Details: envelope.Details}

	var code string
	if json.Unmarshal(envelope.Error, &code) == nil {
		apiErr.Code = code

		return apiErr, nil
	}

	var nested nestedError
	if json.Unmarshal(envelope.Error, &nested) == nil {
		apiErr.Code = nested.Title
		apiErr.Title = nested.Title

		if apiErr.Description == "" {
			apiErr.Description = nested.Message
		}

		return apiErr, nil
	}

	return nil, ErrNoErrorDocument
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var zerr *Error
	if errors.As(err, &zerr) {
		return zerr.StatusCode
	}

	return 0
}

func isKind(err error, kind ErrorKind) bool {
	var zerr *Error
	if errors.As(err, &zerr) {
		return zerr.Kind == kind
	}

	return false
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return isKind(err, ErrorKindHTTPStatus) && StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return isKind(err, ErrorKindHTTPStatus) && StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return isKind(err, ErrorKindHTTPStatus) && StatusCode(err) == http.StatusForbidden
}

// IsUnprocessable checks if the error is a 422 response (record validation).
func IsUnprocessable(err error) bool {
	return isKind(err, ErrorKindHTTPStatus) && StatusCode(err) == http.StatusUnprocessableEntity
}

// IsRateLimited checks if the error is a 429 response.
func IsRateLimited(err error) bool {
	return isKind(err, ErrorKindHTTPStatus) && StatusCode(err) == http.StatusTooManyRequests
}

// IsTransport checks if the call failed before a response was received.
func IsTransport(err error) bool {
	return isKind(err, ErrorKindTransport)
}

// IsDecode checks if a successful response could not be decoded.
func IsDecode(err error) bool {
	return isKind(err, ErrorKindDecode)
}

// RecordErrors returns the validation details of a 422 response, keyed by field.
func RecordErrors(err error) map[string]interface{} {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Details
	}

	return nil
}

// IsCode reports whether err carries the given Zendesk error code (e.g. "RecordNotFound").
func IsCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.EqualFold(apiErr.Code, code)
	}

	return false
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrSubdomainRequired     = errors.New("subdomain or base URL is required")
	ErrCredentialsRequired   = errors.New("username and API key are required")
	ErrRouteRequired         = errors.New("route is required")
	ErrUnsupportedMethod     = errors.New("unsupported HTTP method")
	ErrNestedQueryValue      = errors.New("query values must be scalars")
	ErrNotAnObject           = errors.New("response is not a JSON object")
	ErrEmptyResponse         = errors.New("empty response from transport")
	ErrNoErrorDocument       = errors.New("body is not a Zendesk error document")
	ErrIDsRequired           = errors.New("at least one ID is required")
	ErrQueryRequired         = errors.New("search query is required")
	ErrEmailRequired         = errors.New("email is required")
	ErrSubjectRequired       = errors.New("subject is required")
	ErrTitleRequired         = errors.New("title is required")
	ErrNameRequired          = errors.New("name is required")
	ErrPayloadRequired       = errors.New("payload is required")
	ErrConflictingUserFilter = errors.New("group and organization filters are mutually exclusive")
	ErrCacheMiss             = errors.New("key not found")
	ErrCacheEntryExpired     = errors.New("entry expired")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
	ErrNATSURLRequired       = errors.New("NATS URL is required")
	ErrRedisAddrRequired     = errors.New("redis address is required")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrInvalidCacheEntry     = errors.New("invalid cache entry")
	ErrUnknownConfigKey      = errors.New("unknown configuration key")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrInvalidOutputFormat   = errors.New("invalid output format")
)
