package httpclient

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/fetchkit/errors"
)

// StatusError is returned for non-2xx responses that no response
// interceptor recovered. Transport failures are never wrapped in it.
type StatusError struct {
	Message  string
	Response *Response
	Config   *RequestConfig
}

func newStatusError(resp *Response) *StatusError {
	return &StatusError{
		Message:  fmt.Sprintf("Request failed with status code %d", resp.Status),
		Response: resp,
		Config:   resp.Config,
	}
}

func (e *StatusError) Error() string { return e.Message }

// IsHTTPError is always true; it marks errors that carry a response.
func (e *StatusError) IsHTTPError() bool { return true }

// Status returns the response status, or 0 without a response.
func (e *StatusError) Status() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.Status
}

// AppError maps the failure to an application error for display, taking
// the message from a JSON "message" or "error" field when the body has one.
func (e *StatusError) AppError() *apperrors.AppError {
	status := e.Status()
	appErr := apperrors.FromHTTPStatus(status, bodyMessage(e.Response)).WithCause(e)
	if e.Config != nil {
		appErr.WithDetail("method", e.Config.Method).WithDetail("url", e.Config.URL)
	}
	return appErr
}

func bodyMessage(resp *Response) string {
	if resp == nil {
		return ""
	}
	switch data := resp.Data.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s, ok := data[key].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if len(data) <= 200 {
			return data
		}
	}
	return resp.StatusText
}

// IsStatusError reports whether err wraps a *StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// AsStatusError extracts a *StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
