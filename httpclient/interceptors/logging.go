package interceptors

import (
	"context"

	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/interceptor"
	"github.com/kbukum/fetchkit/logger"
)

// LogRequests logs each outgoing request at debug level.
func LogRequests(log *logger.Logger) interceptor.Fulfilled[httpclient.RequestConfig] {
	log = componentLogger(log)
	return func(_ context.Context, cfg *httpclient.RequestConfig) (*httpclient.RequestConfig, error) {
		log.Debug("request", logger.Fields(
			logger.FieldMethod, cfg.Method,
			logger.FieldURL, cfg.URL,
			"base_url", cfg.BaseURL,
		))
		return nil, nil
	}
}

// LogResponses returns a handler pair logging successes at info level and
// failures at warn level. Failures are passed on unchanged.
func LogResponses(log *logger.Logger) (interceptor.Fulfilled[httpclient.Response], interceptor.Rejected[httpclient.Response]) {
	log = componentLogger(log)
	onFulfilled := func(_ context.Context, resp *httpclient.Response) (*httpclient.Response, error) {
		fields := logger.Fields(logger.FieldStatus, resp.Status)
		if resp.Config != nil {
			fields[logger.FieldMethod] = resp.Config.Method
			fields[logger.FieldURL] = resp.Config.URL
		}
		log.Info("response", fields)
		return nil, nil
	}
	onRejected := func(_ context.Context, err error) (*httpclient.Response, error) {
		fields := logger.Fields(logger.FieldError, err.Error())
		if se, ok := httpclient.AsStatusError(err); ok {
			fields[logger.FieldStatus] = se.Status()
			if se.Config != nil {
				fields[logger.FieldMethod] = se.Config.Method
				fields[logger.FieldURL] = se.Config.URL
			}
		}
		log.Warn("request failed", fields)
		return nil, err
	}
	return onFulfilled, onRejected
}

// UseLogging installs LogRequests and LogResponses on c and returns the ids
// for Eject.
func UseLogging(c *httpclient.Client, log *logger.Logger) (request, response interceptor.HandlerID) {
	chains := c.Interceptors()
	onFulfilled, onRejected := LogResponses(log)
	return chains.Request.Use(LogRequests(log), nil), chains.Response.Use(onFulfilled, onRejected)
}

func componentLogger(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.Nop()
	}
	return log.WithComponent("httpclient.interceptors")
}
