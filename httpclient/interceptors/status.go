package interceptors

import (
	"context"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/interceptor"
)

// OnStatus calls fn for every *httpclient.StatusError with one of the given
// statuses, then passes the error on. Use it for side effects such as
// clearing a session on 401.
func OnStatus(fn func(ctx context.Context, err *httpclient.StatusError), statuses ...int) interceptor.Rejected[httpclient.Response] {
	match := make(map[int]bool, len(statuses))
	for _, s := range statuses {
		match[s] = true
	}
	return func(ctx context.Context, err error) (*httpclient.Response, error) {
		if se, ok := httpclient.AsStatusError(err); ok && match[se.Status()] {
			fn(ctx, se)
		}
		return nil, err
	}
}

// InvalidateOn returns an OnStatus handler that drops tok on the given
// statuses so the next request refreshes it.
func InvalidateOn(tok *RefreshingToken, statuses ...int) interceptor.Rejected[httpclient.Response] {
	return OnStatus(func(context.Context, *httpclient.StatusError) { tok.Invalidate() }, statuses...)
}
