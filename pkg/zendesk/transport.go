package zendesk

import (
	"context"
	"net/http"
	"time"
)

// SendRequest is a fully built request handed to a Sender.
type SendRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// RawResponse is an undecoded HTTP response.
type RawResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Sender performs one HTTP exchange. Implementations must return an error
// only when no response was received; every status code is a response.
type Sender interface {
	Send(ctx context.Context, req *SendRequest) (*RawResponse, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, req *SendRequest) (*RawResponse, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, req *SendRequest) (*RawResponse, error) {
	return f(ctx, req)
}

// Failure describes a failed call reported to an ErrorSink.
type Failure struct {
	Route      string
	Method     string
	StatusCode int
	Message    string
	Err        error
}

// ErrorSink observes failed calls. It is invoked at most once per failed
// call and never for successful ones.
type ErrorSink interface {
	RecordFailure(ctx context.Context, failure Failure)
}

// SinkFunc adapts a function to the ErrorSink interface.
type SinkFunc func(ctx context.Context, failure Failure)

// RecordFailure calls f.
func (f SinkFunc) RecordFailure(ctx context.Context, failure Failure) {
	f(ctx, failure)
}

type loggerSink struct {
	logger Logger
}

// LoggerSink returns an ErrorSink that logs each failure at error level.
func LoggerSink(logger Logger) ErrorSink {
	return &loggerSink{logger: logger}
}

func (s *loggerSink) RecordFailure(_ context.Context, failure Failure) {
	if s.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"route":  failure.Route,
		"method": failure.Method,
	}

	if failure.StatusCode != 0 {
		fields["status"] = failure.StatusCode
	}

	if failure.Err != nil {
		fields["error"] = failure.Err.Error()
	}

	s.logger.Error("Zendesk call failed: "+failure.Message, fields)
}
