package rest

import (
	"net/http"

	"github.com/kbukum/fetchkit/httpclient"
)

// Status helpers over *httpclient.StatusError, so callers of this package
// don't need to unwrap it themselves.

// IsNotFound checks if the error is a 404 Not Found.
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// IsAuth checks if the error is a 401/403 authentication error.
func IsAuth(err error) bool {
	s := statusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

// IsRateLimit checks if the error is a 429 Too Many Requests.
func IsRateLimit(err error) bool { return statusOf(err) == http.StatusTooManyRequests }

// IsServerError checks if the error is a 5xx server error.
func IsServerError(err error) bool { return statusOf(err) >= 500 }

// IsRetryable checks if the status maps to a retryable application error.
// The client itself never retries.
func IsRetryable(err error) bool {
	se, ok := httpclient.AsStatusError(err)
	return ok && se.AppError().Retryable
}

func statusOf(err error) int {
	if se, ok := httpclient.AsStatusError(err); ok {
		return se.Status()
	}
	return 0
}
