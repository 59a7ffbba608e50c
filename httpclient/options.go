package httpclient

import "maps"

// RequestOption adjusts a single call, or a child's defaults in Create.
type RequestOption func(*RequestConfig)

// WithHeader sets one header.
func WithHeader(name, value string) RequestOption {
	return func(c *RequestConfig) {
		if c.Headers == nil {
			c.Headers = map[string]string{}
		}
		c.Headers[name] = value
	}
}

// WithHeaders sets several headers. In Create the map replaces the
// parent's headers entirely.
func WithHeaders(headers map[string]string) RequestOption {
	return func(c *RequestConfig) {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(headers))
		}
		maps.Copy(c.Headers, headers)
	}
}

// WithParam sets one query parameter.
func WithParam(name string, value any) RequestOption {
	return func(c *RequestConfig) {
		if c.Params == nil {
			c.Params = Params{}
		}
		c.Params[name] = value
	}
}

// WithParams sets several query parameters.
func WithParams(params Params) RequestOption {
	return func(c *RequestConfig) {
		if c.Params == nil {
			c.Params = make(Params, len(params))
		}
		maps.Copy(c.Params, params)
	}
}

// WithBaseURL overrides the base URL.
func WithBaseURL(base string) RequestOption {
	return func(c *RequestConfig) { c.BaseURL = base }
}

// WithCredentials overrides whether cookies are sent and stored.
func WithCredentials(include bool) RequestOption {
	return func(c *RequestConfig) { c.WithCredentials = Bool(include) }
}
