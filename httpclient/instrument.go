package httpclient

import (
	"context"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/observability"
)

// headerCarrier lets the propagator write into FetchRequest.Headers.
type headerCarrier map[string]string

func (h headerCarrier) Get(key string) string {
	v, _ := lookupHeader(h, key)
	return v
}

func (h headerCarrier) Set(key, value string) { h[key] = value }

func (h headerCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	return keys
}

// NewTracingTransport wraps next in a client span per request and injects
// the trace context into the outgoing headers. peer names the remote
// service on the span.
func NewTracingTransport(next Transport, peer string) Transport {
	return TransportFunc(func(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
		ctx, span := observability.Tracer().Start(ctx, observability.SpanHTTPClient,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String(observability.AttrHTTPMethod, req.Method),
				attribute.String(observability.AttrHTTPURL, req.URL),
				attribute.String(observability.AttrPeerService, peer),
			),
		)
		defer span.End()

		out := *req
		out.Headers = make(map[string]string, len(req.Headers)+2)
		for k, v := range req.Headers {
			out.Headers[k] = v
		}
		propagator := otel.GetTextMapPropagator()
		if propagator == nil {
			propagator = propagation.TraceContext{}
		}
		propagator.Inject(ctx, headerCarrier(out.Headers))

		resp, err := next.Fetch(ctx, &out)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatusCode, resp.Status))
		if resp.Status >= 500 {
			span.SetStatus(codes.Error, resp.StatusText)
		}
		return resp, nil
	})
}

// NewMetricsTransport records request counts and latency on m. A nil m
// returns next unchanged.
func NewMetricsTransport(next Transport, m *observability.Metrics) Transport {
	if m == nil {
		return next
	}
	return TransportFunc(func(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
		host := hostOf(req.URL)
		m.RecordRequestStart(ctx, req.Method, host)
		start := time.Now()

		resp, err := next.Fetch(ctx, req)
		status := 0
		if err == nil {
			status = resp.Status
		}
		m.RecordRequestEnd(ctx, req.Method, host, status, time.Since(start))
		return resp, err
	})
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
