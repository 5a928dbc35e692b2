package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/zendesk/internal/auth"
	"github.com/fivetwenty-io/zendesk/internal/constants"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// QueryParam is one query string pair.
type QueryParam struct {
	Key   string
	Value string
}

// Request is an immutable description of one API call.
type Request struct {
	Method  string
	Route   string
	URL     string
	Query   []QueryParam
	Body    []byte
	Headers map[string]string
}

// EncodedQuery returns the query string in argument order.
func (r *Request) EncodedQuery() string {
	parts := make([]string, 0, len(r.Query))
	for _, param := range r.Query {
		parts = append(parts, url.QueryEscape(param.Key)+"="+url.QueryEscape(param.Value))
	}

	return strings.Join(parts, "&")
}

// FullURL returns the URL including the query string.
func (r *Request) FullURL() string {
	query := r.EncodedQuery()
	if query == "" {
		return r.URL
	}

	return r.URL + "?" + query
}

// Header returns a header value.
func (r *Request) Header(name string) string {
	return r.Headers[name]
}

// Builder turns a route, arguments and method into a Request for one API family.
type Builder struct {
	BaseURI    string
	DataSuffix string
	UserAgent  string
}

// NewBuilder creates a builder rooted at baseURI.
func NewBuilder(baseURI, dataSuffix, userAgent string) *Builder {
	return &Builder{
		BaseURI:    strings.TrimRight(baseURI, "/"),
		DataSuffix: dataSuffix,
		UserAgent:  userAgent,
	}
}

// Build assembles the request. GET arguments become query parameters in
// insertion order; for other methods they become the JSON body.
func (b *Builder) Build(route string, args *zendesk.Args, method string, identity auth.Identity, addSuffix bool) (*Request, error) {
	route = strings.TrimLeft(route, "/")
	if route == "" {
		return nil, zendesk.ErrRouteRequired
	}

	method = strings.ToUpper(method)

	req := &Request{
		Method:  method,
		Route:   route,
		URL:     b.BaseURI + "/" + route,
		Headers: b.headers(identity),
	}

	if addSuffix {
		req.URL += b.DataSuffix
	}

	switch method {
	case http.MethodGet:
		query, err := queryParams(args)
		if err != nil {
			return nil, err
		}

		req.Query = query
	case http.MethodPost, http.MethodPut:
		body, err := encodeBody(args)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, route, err)
		}

		req.Body = body
	case http.MethodDelete:
		if args.Len() > 0 {
			body, err := encodeBody(args)
			if err != nil {
				return nil, fmt.Errorf("encoding %s %s body: %w", method, route, err)
			}

			req.Body = body
		}
	default:
		return nil, fmt.Errorf("%w: %s", zendesk.ErrUnsupportedMethod, method)
	}

	return req, nil
}

func encodeBody(args *zendesk.Args) ([]byte, error) {
	if args.Len() == 0 {
		return []byte("{}"), nil
	}

	return json.Marshal(args) //nolint:wrapcheck
}

func (b *Builder) headers(identity auth.Identity) map[string]string {
	headers := map[string]string{"Content-Type": constants.ContentTypeJSON}

	if header, ok := auth.ComposeAuthHeader(identity); ok {
		headers["Authorization"] = header
	}

	if b.UserAgent != "" {
		headers["User-Agent"] = b.UserAgent
	}

	return headers
}

func queryParams(args *zendesk.Args) ([]QueryParam, error) {
	if args.Len() == 0 {
		return nil, nil
	}

	query := make([]QueryParam, 0, args.Len())

	var err error

	args.Each(func(key string, value interface{}) {
		if err != nil {
			return
		}

		var s string

		s, err = queryValue(key, value)
		query = append(query, QueryParam{Key: key, Value: s})
	})

	if err != nil {
		return nil, err
	}

	return query, nil
}

func queryValue(key string, value interface{}) (string, error) {
	if value != nil {
		switch reflect.TypeOf(value).Kind() { //nolint:exhaustive
		case reflect.Map, reflect.Struct:
			return "", fmt.Errorf("%w: %s is a %T", zendesk.ErrNestedQueryValue, key, value)
		case reflect.Slice, reflect.Array:
			if _, ok := value.([]byte); !ok {
				return "", fmt.Errorf("%w: %s is a %T", zendesk.ErrNestedQueryValue, key, value)
			}
		}
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", zendesk.ErrNestedQueryValue, key, err)
	}

	return s, nil
}
