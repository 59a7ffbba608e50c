package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"

	"golang.org/x/net/http2"
	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/fetchkit/security"
)

// Credentials controls whether cookies travel with a request.
type Credentials int

const (
	// CredentialsOmit neither sends nor stores cookies.
	CredentialsOmit Credentials = iota
	// CredentialsInclude sends and stores cookies using the transport jar.
	CredentialsInclude
)

// FetchRequest is what the client hands to a Transport.
type FetchRequest struct {
	Method      string
	URL         string
	Headers     map[string]string
	Body        []byte
	Credentials Credentials
}

// FetchResponse is what a Transport returns. The caller closes Body.
type FetchResponse struct {
	Status     int
	StatusText string
	Headers    http.Header
	Body       io.ReadCloser
}

// OK reports whether Status is 2xx.
func (r *FetchResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text reads and closes the body.
func (r *FetchResponse) Text() (string, error) {
	if r.Body == nil {
		return "", nil
	}
	defer func() { _ = r.Body.Close() }()
	b, err := io.ReadAll(r.Body)
	return string(b), err
}

// Transport moves bytes. Errors it returns reach the caller unchanged.
type Transport interface {
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *FetchRequest) (*FetchResponse, error)

func (f TransportFunc) Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
	return f(ctx, req)
}

// TransportConfig configures NewHTTPTransport.
type TransportConfig struct {
	TLS *security.TLSConfig
	// HTTP2 negotiates HTTP/2 over TLS through golang.org/x/net/http2.
	// When false only HTTP/1.1 is offered.
	HTTP2 bool
}

// HTTPTransport is the net/http Transport. Two clients share one
// connection pool; only the credentialed one owns a cookie jar.
type HTTPTransport struct {
	rt       *http.Transport
	plain    *http.Client
	withJar  *http.Client
	jar      http.CookieJar
	protocol string
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport builds an HTTPTransport.
func NewHTTPTransport(cfg TransportConfig) (*HTTPTransport, error) {
	rt := http.DefaultTransport.(*http.Transport).Clone()

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		rt.TLSClientConfig = tlsCfg
	}

	protocol := "http/1.1"
	if cfg.HTTP2 {
		if _, err := http2.ConfigureTransports(rt); err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
		protocol = "h2"
	} else {
		rt.ForceAttemptHTTP2 = false
		rt.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
	}

	return &HTTPTransport{
		rt:       rt,
		plain:    &http.Client{Transport: rt},
		withJar:  &http.Client{Transport: rt, Jar: jar},
		jar:      jar,
		protocol: protocol,
	}, nil
}

// DefaultTransport returns an HTTP/1.1 transport with system TLS roots.
func DefaultTransport() *HTTPTransport {
	t, err := NewHTTPTransport(TransportConfig{})
	if err != nil {
		// Only TLS files or the cookie jar can fail, and neither is used here.
		panic(err)
	}
	return t
}

// Fetch sends req over net/http.
func (t *HTTPTransport) Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	client := t.plain
	if req.Credentials == CredentialsInclude {
		client = t.withJar
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	return &FetchResponse{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    resp.Header,
		Body:       resp.Body,
	}, nil
}

// Jar exposes the cookie jar used for credentialed requests.
func (t *HTTPTransport) Jar() http.CookieJar { return t.jar }

// Protocol is "h2" or "http/1.1", the protocol offered over TLS.
func (t *HTTPTransport) Protocol() string { return t.protocol }

// Close drops idle connections.
func (t *HTTPTransport) Close() {
	t.rt.CloseIdleConnections()
}

// statusText strips the code from "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
