package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/kbukum/fetchkit/httpclient"
)

// Client is a JSON-focused REST client that wraps the base HTTP client.
type Client struct {
	http *httpclient.Client
}

// New creates a REST client from cfg. Accept: application/json is added
// unless cfg already sets it.
func New(cfg httpclient.Config, opts ...httpclient.Option) (*Client, error) {
	headers := make(map[string]string, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if _, ok := (&httpclient.RequestConfig{Headers: headers}).Header("Accept"); !ok {
		headers["Accept"] = "application/json"
	}
	cfg.Headers = headers

	c, err := httpclient.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// NewFromClient creates a REST client from an existing HTTP client. The
// client's interceptors keep running for every call.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// HTTP returns the underlying HTTP client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// Response wraps a typed REST response.
type Response[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, lower-cased.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
	// Envelope is the untyped response the interceptors produced.
	Envelope *httpclient.Response
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...httpclient.RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, opts)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...httpclient.RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPost, path, body, opts)
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...httpclient.RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPut, path, body, opts)
}

// Patch performs a PATCH request with a JSON body and decodes the response into type T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...httpclient.RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPatch, path, body, opts)
}

// Delete performs a DELETE request and decodes the response into type T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...httpclient.RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodDelete, path, nil, opts)
}

func do[T any](ctx context.Context, c *Client, method, path string, body any, opts []httpclient.RequestOption) (*Response[T], error) {
	cfg := httpclient.RequestConfig{Method: method, URL: path, Data: body}
	for _, opt := range opts {
		opt(&cfg)
	}

	resp, err := c.http.Request(ctx, cfg)
	if err != nil {
		// A status error still carries a body worth decoding.
		if se, ok := httpclient.AsStatusError(err); ok && se.Response != nil {
			if data, decodeErr := Decode[T](se.Response); decodeErr == nil {
				return wrap(se.Response, data), err
			}
		}
		return nil, err
	}

	data, err := Decode[T](resp)
	if err != nil {
		return nil, err
	}
	return wrap(resp, data), nil
}

func wrap[T any](resp *httpclient.Response, data T) *Response[T] {
	return &Response[T]{StatusCode: resp.Status, Headers: resp.Headers, Data: data, Envelope: resp}
}

// Decode converts resp.Data into T. Data is used rather than the raw body
// so that response interceptors that reshape it are honoured. A nil Data
// yields the zero value.
func Decode[T any](resp *httpclient.Response) (T, error) {
	var out T
	if resp == nil || resp.Data == nil {
		return out, nil
	}
	if v, ok := resp.Data.(T); ok {
		return v, nil
	}
	b, err := json.Marshal(resp.Data)
	if err != nil {
		return out, fmt.Errorf("httpclient/rest: encode response data: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("httpclient/rest: decode response: %w", err)
	}
	return out, nil
}

// Select reads one value out of resp.Data with a gjson path such as
// "items.0.name" or "items.#.id".
func Select(resp *httpclient.Response, path string) gjson.Result {
	if resp == nil || resp.Data == nil {
		return gjson.Result{}
	}
	if s, ok := resp.Data.(string); ok {
		return gjson.Get(s, path)
	}
	b, err := json.Marshal(resp.Data)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(b, path)
}
