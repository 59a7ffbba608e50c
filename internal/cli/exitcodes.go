package cli

import (
	"errors"

	apperrors "github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/httpclient"
)

// Exit codes for the fetchkit CLI.
const (
	ExitSuccess = 0

	// ExitHTTPError means the server answered with a non-2xx status.
	ExitHTTPError = 1

	ExitConfigError = 3

	// ExitNetworkError means no response was received.
	ExitNetworkError = 4

	ExitUsageError = 64
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if httpclient.IsStatusError(err) {
		return ExitHTTPError
	}
	// Everything else is rejected input: bad flags, missing arguments or
	// a request an interceptor refused.
	return ExitUsageError
}

// classified reports whether err already carries its exit code: tagged
// errors, HTTP failures and application errors.
func classified(err error) bool {
	var ee *exitError
	if errors.As(err, &ee) || httpclient.IsStatusError(err) {
		return true
	}
	_, ok := apperrors.AsAppError(err)
	return ok
}
