package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/fetchkit/logger"
)

// dispatch runs one request through the pipeline: merge with defaults,
// request interceptors, URL resolution, transport, body parse, envelope,
// then the response interceptors.
func (c *Client) dispatch(ctx context.Context, call RequestConfig) (*Response, error) {
	merged := MergeConfig(c.defaults, call)

	cfg, err := c.request.RunFulfilled(ctx, &merged)
	if err != nil {
		return nil, err
	}

	fetchReq, err := buildFetchRequest(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	fetchResp, err := c.transport.Fetch(ctx, fetchReq)
	if err != nil {
		c.log.Debug("transport failed", logger.Fields(
			logger.FieldMethod, fetchReq.Method,
			logger.FieldURL, fetchReq.URL,
			logger.FieldError, err.Error(),
		))
		return nil, err
	}

	text, err := fetchResp.Text()
	if err != nil {
		return nil, fmt.Errorf("httpclient: read response body: %w", err)
	}

	resp := &Response{
		Data:       parseBody(text),
		Status:     fetchResp.Status,
		StatusText: fetchResp.StatusText,
		Headers:    flattenHeaders(fetchResp.Headers),
		Config:     cfg,
		Raw:        []byte(text),
	}
	c.log.Debug("response received", logger.Fields(
		logger.FieldMethod, fetchReq.Method,
		logger.FieldURL, fetchReq.URL,
		logger.FieldStatus, resp.Status,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))

	if !fetchResp.OK() {
		return c.response.RunRejected(ctx, newStatusError(resp))
	}
	return c.response.RunFulfilled(ctx, resp)
}

// buildFetchRequest resolves the URL and encodes the body. Strings and
// byte slices are sent as-is; anything else is JSON-encoded.
func buildFetchRequest(cfg *RequestConfig) (*FetchRequest, error) {
	headers := make(map[string]string, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	var body []byte
	switch data := cfg.Data.(type) {
	case nil:
	case string:
		body = []byte(data)
	case []byte:
		body = data
	case json.RawMessage:
		body = data
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = encoded
	}
	if body != nil {
		if _, ok := lookupHeader(headers, "Content-Type"); !ok {
			headers["Content-Type"] = "application/json"
		}
	}

	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = http.MethodGet
	}

	req := &FetchRequest{
		Method:  method,
		URL:     ResolveURL(cfg.BaseURL, cfg.URL, cfg.Params),
		Headers: headers,
		Body:    body,
	}
	if cfg.Credentialed() {
		req.Credentials = CredentialsInclude
	}
	return req, nil
}

// parseBody decodes text as JSON, returning the text itself when it is not
// JSON and nil when it is empty.
func parseBody(text string) any {
	if text == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return text
	}
	return v
}

// flattenHeaders lower-cases names and joins repeated values with ", ".
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) == 0 {
			continue
		}
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}
