package interceptors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/interceptor"
)

// TokenSource supplies the bearer token for a request. An empty token
// sends no Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns token.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) { return token, nil })
}

// Bearer sets "Authorization: Bearer <token>" from src. A failing source
// aborts the request with its error.
func Bearer(src TokenSource) interceptor.Fulfilled[httpclient.RequestConfig] {
	return func(ctx context.Context, cfg *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
		token, err := src.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("interceptors: bearer token: %w", err)
		}
		if token == "" {
			return nil, nil
		}
		return withHeader(cfg, "Authorization", "Bearer "+token), nil
	}
}

// RefreshFunc obtains a new token.
type RefreshFunc func(ctx context.Context) (string, error)

// ErrNoRefresh is returned when a token needs refreshing and no RefreshFunc
// was configured.
var ErrNoRefresh = errors.New("interceptors: token expired and no refresh function")

// RefreshingToken is a TokenSource that reads the exp claim of a JWT and
// calls refresh before it passes. The signature is not verified; that is the
// server's job. Tokens that are not JWTs or carry no exp never expire until
// Invalidate is called. Concurrent callers share one refresh.
type RefreshingToken struct {
	refresh RefreshFunc
	leeway  time.Duration
	now     func() time.Time

	mu    sync.Mutex
	token string
}

var _ TokenSource = (*RefreshingToken)(nil)

// NewRefreshingToken starts from initial, which may be empty. Tokens are
// refreshed leeway before their expiry.
func NewRefreshingToken(initial string, refresh RefreshFunc, leeway time.Duration) *RefreshingToken {
	return &RefreshingToken{refresh: refresh, leeway: leeway, now: time.Now, token: initial}
}

// Token returns the current token, refreshing it first when it is missing
// or about to expire.
func (r *RefreshingToken) Token(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token != "" && !r.expiring(r.token) {
		return r.token, nil
	}
	if r.refresh == nil {
		if r.token == "" {
			return "", nil
		}
		return "", ErrNoRefresh
	}
	token, err := r.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("interceptors: refresh token: %w", err)
	}
	r.token = token
	return token, nil
}

// Invalidate drops the current token so the next request refreshes.
func (r *RefreshingToken) Invalidate() {
	r.mu.Lock()
	r.token = ""
	r.mu.Unlock()
}

func (r *RefreshingToken) expiring(token string) bool {
	exp, ok := expiresAt(token)
	if !ok {
		return false
	}
	return !r.now().Add(r.leeway).Before(exp)
}

// expiresAt reads the exp claim without verifying the signature.
func expiresAt(token string) (time.Time, bool) {
	claims := gojwt.MapClaims{}
	if _, _, err := gojwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
