package http

import (
	"context"
	"time"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// Client executes built requests through a Sender.
type Client struct {
	sender       zendesk.Sender
	logger       zendesk.Logger
	debug        bool
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger zendesk.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig enables retries of connection errors, 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithSender replaces the default retrying sender.
func WithSender(sender zendesk.Sender) Option {
	return func(c *Client) {
		c.sender = sender
	}
}

// NewClient creates a new HTTP client.
func NewClient(opts ...Option) *Client {
	client := &Client{}

	for _, opt := range opts {
		opt(client)
	}

	if client.sender == nil {
		client.sender = NewRetryableSender(SenderConfig{
			RetryMax:     client.retryMax,
			RetryWaitMin: client.retryWaitMin,
			RetryWaitMax: client.retryWaitMax,
			Logger:       client.logger,
		})
	}

	return client
}

// Execute sends req and returns the raw response. Every hook runs exactly
// once after the exchange, including when it fails.
func (c *Client) Execute(ctx context.Context, req *Request, hooks ...func()) (*zendesk.RawResponse, error) {
	defer func() {
		for _, hook := range hooks {
			if hook != nil {
				hook()
			}
		}
	}()

	start := time.Now()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"query":  req.EncodedQuery(),
		})
	}

	raw, err := c.sender.Send(ctx, &zendesk.SendRequest{
		Method:  req.Method,
		URL:     req.FullURL(),
		Headers: req.Headers,
		Body:    req.Body,
		Timeout: c.timeout,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("HTTP Request failed", map[string]interface{}{
				"method":   req.Method,
				"url":      req.URL,
				"error":    err.Error(),
				"duration": time.Since(start).String(),
			})
		}

		return nil, zendesk.NewTransportError(err)
	}

	if raw == nil {
		return nil, zendesk.NewTransportError(zendesk.ErrEmptyResponse)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   raw.StatusCode,
			"duration": time.Since(start).String(),
			"size":     len(raw.Body),
		})
	}

	return raw, nil
}
