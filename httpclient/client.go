package httpclient

import (
	"context"
	"net/http"

	"github.com/kbukum/fetchkit/interceptor"
	"github.com/kbukum/fetchkit/logger"
)

// Interceptors are the two chains owned by one Client.
type Interceptors struct {
	Request  *interceptor.Manager[RequestConfig]
	Response *interceptor.Manager[Response]
}

// Client sends requests relative to its Defaults through its own
// interceptor chains. It is safe for concurrent use.
type Client struct {
	defaults  Defaults
	transport Transport
	// base is the transport before any WrapTransport decoration; Stop
	// closes it.
	base      Transport
	log       *logger.Logger
	request   *interceptor.Manager[RequestConfig]
	response  *interceptor.Manager[Response]
}

// Option configures New.
type Option func(*Client)

// WithTransport replaces the default net/http transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
		c.base = t
	}
}

// WrapTransport decorates the transport chosen so far, for example with
// NewTracingTransport. Options apply in order, so pass it after
// WithTransport.
func WrapTransport(wrap func(Transport) Transport) Option {
	return func(c *Client) {
		if c.transport == nil {
			c.transport = DefaultTransport()
			c.base = c.transport
		}
		c.transport = wrap(c.transport)
	}
}

// WithLogger sets the logger used for debug request logs.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.WithComponent("httpclient")
		}
	}
}

// New creates a client holding a private copy of defaults and empty
// interceptor chains.
func New(defaults Defaults, opts ...Option) *Client {
	c := &Client{
		defaults: defaults.clone(),
		log:      logger.Nop(),
		request:  interceptor.NewManager[RequestConfig](),
		response: interceptor.NewManager[Response](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = DefaultTransport()
		c.base = c.transport
	}
	return c
}

// Create returns a child client. Its defaults are this client's defaults
// with the overrides applied: BaseURL and WithCredentials when given,
// Headers replaced as a whole when given. Only those three fields are
// read: WithParam and WithParams are ignored, and WithBaseURL("") keeps the
// parent's base. The child starts with empty interceptor chains and shares
// the transport and logger.
func (c *Client) Create(overrides ...RequestOption) *Client {
	var o RequestConfig
	for _, opt := range overrides {
		opt(&o)
	}

	d := c.defaults.clone()
	if o.BaseURL != "" {
		d.BaseURL = o.BaseURL
	}
	if o.Headers != nil {
		d.Headers = o.Headers
	}
	if o.WithCredentials != nil {
		d.WithCredentials = *o.WithCredentials
	}

	return &Client{
		defaults:  d.clone(),
		transport: c.transport,
		base:      c.base,
		log:       c.log,
		request:   interceptor.NewManager[RequestConfig](),
		response:  interceptor.NewManager[Response](),
	}
}

// Interceptors exposes the request and response chains.
func (c *Client) Interceptors() Interceptors {
	return Interceptors{Request: c.request, Response: c.response}
}

// Defaults returns a copy of the client defaults.
func (c *Client) Defaults() Defaults {
	return c.defaults.clone()
}

// Transport returns the transport requests are sent through.
func (c *Client) Transport() Transport {
	return c.transport
}

// Close releases idle connections of the underlying transport, looking
// through any WrapTransport decoration. Children made with Create share
// the transport, so closing one affects all of them.
func (c *Client) Close() {
	if closer, ok := c.base.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Request sends cfg. Method defaults to GET.
func (c *Client) Request(ctx context.Context, cfg RequestConfig) (*Response, error) {
	return c.dispatch(ctx, cfg)
}

// Get sends a GET request to url.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodGet, url, nil, opts)
}

// Delete sends a DELETE request to url.
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodDelete, url, nil, opts)
}

// Head sends a HEAD request; the response Data is nil.
func (c *Client) Head(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodHead, url, nil, opts)
}

// Options sends an OPTIONS request to url.
func (c *Client) Options(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodOptions, url, nil, opts)
}

// Post sends data as the body of a POST request.
func (c *Client) Post(ctx context.Context, url string, data any, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodPost, url, data, opts)
}

// Put sends data as the body of a PUT request.
func (c *Client) Put(ctx context.Context, url string, data any, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodPut, url, data, opts)
}

// Patch sends data as the body of a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, data any, opts ...RequestOption) (*Response, error) {
	return c.send(ctx, http.MethodPatch, url, data, opts)
}

func (c *Client) send(ctx context.Context, method, url string, data any, opts []RequestOption) (*Response, error) {
	cfg := RequestConfig{Method: method, URL: url, Data: data}
	for _, opt := range opts {
		opt(&cfg)
	}
	return c.dispatch(ctx, cfg)
}
