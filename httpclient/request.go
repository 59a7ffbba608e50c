package httpclient

import (
	"maps"
	"net/http"
	"strings"
)

// Params holds query parameters. Values are scalars, pointers to scalars or
// slices of scalars; nil entries are dropped when the URL is built.
type Params map[string]any

// RequestConfig describes one request as it moves through the request
// interceptor chain.
type RequestConfig struct {
	URL     string
	Method  string
	BaseURL string
	Headers map[string]string
	Params  Params
	// Data is the request body. nil sends no body.
	Data any
	// WithCredentials overrides the client default when non-nil.
	WithCredentials *bool
}

// Credentialed reports whether cookies should be sent and stored.
func (c *RequestConfig) Credentialed() bool {
	return c.WithCredentials != nil && *c.WithCredentials
}

// Clone returns a copy with its own Headers and Params maps.
func (c *RequestConfig) Clone() *RequestConfig {
	out := *c
	out.Headers = maps.Clone(c.Headers)
	out.Params = maps.Clone(c.Params)
	return &out
}

// Header returns the value of name using a case-insensitive lookup.
func (c *RequestConfig) Header(name string) (string, bool) {
	return lookupHeader(c.Headers, name)
}

// Response is the envelope returned for every completed request. Treat it
// as immutable; interceptors that need a different value build a new one.
type Response struct {
	// Data is the decoded JSON body, the raw text when the body is not
	// JSON, or nil when the body is empty.
	Data       any
	Status     int
	StatusText string
	// Headers uses lower-case keys; repeated headers are joined with ", ".
	Headers map[string]string
	// Config is the effective request after the request interceptors ran.
	Config *RequestConfig
	// Raw is the undecoded body.
	Raw []byte
}

// OK reports whether Status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// WithData returns a copy of r carrying data.
func (r *Response) WithData(data any) *Response {
	out := *r
	out.Data = data
	return &out
}

// Defaults are the per-client values every request starts from.
type Defaults struct {
	BaseURL         string
	Headers         map[string]string
	WithCredentials bool
}

func (d Defaults) clone() Defaults {
	d.Headers = maps.Clone(d.Headers)
	if d.Headers == nil {
		d.Headers = map[string]string{}
	}
	return d
}

// MergeConfig builds the starting config for a call. Headers are merged
// shallowly into a new map with call values winning per key; names compare
// case-insensitively, so a call's "content-type" replaces a default
// "Content-Type". BaseURL comes
// from call when non-empty. WithCredentials comes from call when set. The
// method is upper-cased and defaults to GET.
func MergeConfig(defaults Defaults, call RequestConfig) RequestConfig {
	out := call

	out.Headers = make(map[string]string, len(defaults.Headers)+len(call.Headers))
	maps.Copy(out.Headers, defaults.Headers)
	for name, value := range call.Headers {
		for k := range out.Headers {
			if k != name && strings.EqualFold(k, name) {
				delete(out.Headers, k)
			}
		}
		out.Headers[name] = value
	}

	if out.BaseURL == "" {
		out.BaseURL = defaults.BaseURL
	}
	if out.WithCredentials == nil {
		creds := defaults.WithCredentials
		out.WithCredentials = &creds
	}

	out.Method = strings.ToUpper(out.Method)
	if out.Method == "" {
		out.Method = http.MethodGet
	}
	out.Params = maps.Clone(call.Params)
	return out
}

// Bool returns a pointer to v, for RequestConfig.WithCredentials.
func Bool(v bool) *bool { return &v }

func lookupHeader(headers map[string]string, name string) (string, bool) {
	if v, ok := headers[name]; ok {
		return v, true
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
