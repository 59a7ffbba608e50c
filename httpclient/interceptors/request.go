package interceptors

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/interceptor"
)

// DefaultRequestIDHeader is used by RequestID when no header is given.
const DefaultRequestIDHeader = "X-Request-Id"

// RequestID sets header to a fresh UUID unless the request already has it.
func RequestID(header string) interceptor.Fulfilled[httpclient.RequestConfig] {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return func(_ context.Context, cfg *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
		if _, ok := cfg.Header(header); ok {
			return nil, nil
		}
		return withHeader(cfg, header, uuid.NewString()), nil
	}
}

// APIPath drops prefix from the request path when the base URL already
// ends with it, so "/api/users" against "https://app.test/api" does not
// become "/api/api/users". Absolute URLs are left alone.
func APIPath(prefix string) interceptor.Fulfilled[httpclient.RequestConfig] {
	prefix = "/" + strings.Trim(prefix, "/")
	return func(_ context.Context, cfg *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
		if isAbsolute(cfg.URL) || !strings.HasSuffix(strings.TrimRight(cfg.BaseURL, "/"), prefix) {
			return nil, nil
		}
		path := cfg.URL
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if path != prefix && !strings.HasPrefix(path, prefix+"/") && !strings.HasPrefix(path, prefix+"?") {
			return nil, nil
		}
		path = strings.TrimPrefix(path, prefix)
		if path == "" || path[0] == '?' {
			path = "/" + path
		}
		out := cfg.Clone()
		out.URL = path
		return out, nil
	}
}

var frontendSource = regexp.MustCompile(`(?i)(/src/|\\src\\|\.(?:ts|tsx|js|jsx)$)`)

// EndpointGuard rejects paths that look like frontend source files before
// anything is sent. The error is an INVALID_INPUT *errors.AppError.
func EndpointGuard() interceptor.Fulfilled[httpclient.RequestConfig] {
	return func(_ context.Context, cfg *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
		candidate := strings.TrimSpace(cfg.URL)
		if frontendSource.MatchString(candidate) {
			return nil, apperrors.InvalidInput("url",
				fmt.Sprintf("%q: frontend source files cannot be requested over HTTP", candidate))
		}
		return nil, nil
	}
}

func withHeader(cfg *httpclient.RequestConfig, name, value string) *httpclient.RequestConfig {
	out := cfg.Clone()
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	for k := range out.Headers {
		if strings.EqualFold(k, name) {
			delete(out.Headers, k)
		}
	}
	out.Headers[name] = value
	return out
}

func isAbsolute(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
