package httpclient

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/fetchkit/httpclient/httpclienttest"
	"github.com/kbukum/fetchkit/observability"
)

func TestTracingTransport(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp, err := observability.NewTracerProvider(observability.Config{ServiceName: "fetchkit-test", SampleRate: 1.0},
		sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	srv := httpclienttest.New(t)
	c := New(Defaults{BaseURL: srv.URL}, WithTransport(NewTracingTransport(DefaultTransport(), "echo")))

	if _, err := c.Get(context.Background(), "/traced"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.Last(t).Header("traceparent") == "" {
		t.Error("expected traceparent to be injected")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != observability.SpanHTTPClient {
		t.Errorf("expected span %s, got %s", observability.SpanHTTPClient, span.Name())
	}
	attrs := map[string]any{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	if attrs[observability.AttrHTTPMethod] != "GET" || attrs[observability.AttrHTTPStatusCode] != int64(200) {
		t.Errorf("unexpected attributes: %v", attrs)
	}
	if attrs[observability.AttrPeerService] != "echo" {
		t.Errorf("expected peer echo, got %v", attrs[observability.AttrPeerService])
	}
}

func TestTracingTransport_RecordsFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp, err := observability.NewTracerProvider(observability.Config{ServiceName: "fetchkit-test", SampleRate: 1.0},
		sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	offline := errors.New("offline")
	next := TransportFunc(func(_ context.Context, req *FetchRequest) (*FetchResponse, error) {
		if _, ok := req.Headers["traceparent"]; !ok {
			t.Error("expected trace context on the outgoing request")
		}
		return nil, offline
	})
	original := map[string]string{"Accept": "application/json"}
	_, err = NewTracingTransport(next, "down").Fetch(context.Background(), &FetchRequest{Method: "GET", URL: "http://down.test/x", Headers: original})
	if !errors.Is(err, offline) {
		t.Fatalf("expected offline, got %v", err)
	}
	if len(original) != 1 {
		t.Errorf("caller headers must not be modified, got %v", original)
	}

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Fatalf("expected one errored span, got %+v", spans)
	}
}

func TestMetricsTransport(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := observability.NewMeterProvider(observability.Config{ServiceName: "fetchkit-test"}, reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := observability.NewMetrics(mp.Meter(observability.TracerName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv := httpclienttest.New(t)
	c := New(Defaults{BaseURL: srv.URL}, WithTransport(NewMetricsTransport(DefaultTransport(), m)))
	for _, path := range []string{"/a", "/status/500"} {
		_, _ = c.Get(context.Background(), path)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	var total int64
	var sawDuration bool
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			switch metric.Name {
			case observability.MetricRequestTotal:
				for _, dp := range metric.Data.(metricdata.Sum[int64]).DataPoints {
					total += dp.Value
				}
			case observability.MetricRequestDuration:
				sawDuration = len(metric.Data.(metricdata.Histogram[float64]).DataPoints) > 0
			}
		}
	}
	if total != 2 {
		t.Errorf("expected 2 completed requests, got %d", total)
	}
	if !sawDuration {
		t.Error("expected duration samples")
	}
}

func TestNewMetricsTransport_NilMetrics(t *testing.T) {
	next := DefaultTransport()
	if got := NewMetricsTransport(next, nil); got != Transport(next) {
		t.Error("expected next to be returned unchanged")
	}
}

func TestHostOf(t *testing.T) {
	if got := hostOf("https://api.test:8443/x"); got != "api.test:8443" {
		t.Errorf("expected host with port, got %q", got)
	}
	if got := hostOf("/relative"); got != "unknown" {
		t.Errorf("expected unknown, got %q", got)
	}
}
