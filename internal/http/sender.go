package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// SenderConfig configures the retrying sender.
type SenderConfig struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       zendesk.Logger
	HTTPClient   *http.Client
}

// RetryableSender sends requests through go-retryablehttp. Every HTTP status
// is handed back as a response; only connection failures become errors.
type RetryableSender struct {
	client *retryablehttp.Client
}

// NewRetryableSender creates a sender. Retries are disabled when RetryMax is 0.
func NewRetryableSender(config SenderConfig) *RetryableSender {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = config.HTTPClient
	retryClient.Logger = nil
	retryClient.RetryMax = config.RetryMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if retryClient.HTTPClient == nil {
		retryClient.HTTPClient = cleanhttp.DefaultPooledClient()
	}

	if config.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = config.RetryWaitMin
	}

	if config.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = config.RetryWaitMax
	}

	if config.Logger != nil {
		logger := config.Logger
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				logger.Warn("Retrying request", map[string]interface{}{
					"method":  req.Method,
					"url":     req.URL.Redacted(),
					"attempt": attempt,
				})
			}
		}
	}

	return &RetryableSender{client: retryClient}
}

// Send performs the exchange and reads the whole body.
func (s *RetryableSender) Send(ctx context.Context, req *zendesk.SendRequest) (*zendesk.RawResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body interface{}
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &zendesk.RawResponse{
		StatusCode: resp.StatusCode,
		Body:       data,
		Headers:    resp.Header.Clone(),
	}, nil
}
