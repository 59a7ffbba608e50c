package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/fetchkit/component"
)

func testConfig() Config {
	cfg := Config{Enabled: true, ServiceName: "fetchkit-test"}
	cfg.ApplyDefaults()
	return cfg
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
	if cfg.MetricInterval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.MetricInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled skips checks", Config{}, false},
		{"valid", Config{Enabled: true, ServiceName: "svc", SampleRate: 0.5}, false},
		{"missing name", Config{Enabled: true, SampleRate: 1}, true},
		{"rate too high", Config{Enabled: true, ServiceName: "svc", SampleRate: 1.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewTracerProvider_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp, err := NewTracerProvider(testConfig(), sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := Tracer().Start(context.Background(), SpanHTTPClient)
	span.SetAttributes(attribute.Int(AttrHTTPStatusCode, 200))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != SpanHTTPClient {
		t.Errorf("expected span %q, got %q", SpanHTTPClient, ended[0].Name())
	}
	var service string
	for _, kv := range ended[0].Resource().Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	if service != "fetchkit-test" {
		t.Errorf("expected service.name fetchkit-test, got %q", service)
	}
}

func TestNewTracerProvider_NeverSample(t *testing.T) {
	cfg := testConfig()
	cfg.SampleRate = -1
	recorder := tracetest.NewSpanRecorder()
	tp, err := NewTracerProvider(cfg, sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := Tracer().Start(context.Background(), "dropped")
	span.End()
	if n := len(recorder.Ended()); n != 0 {
		t.Errorf("expected no sampled spans, got %d", n)
	}
}

func TestMetrics_RecordsRequests(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := NewMeterProvider(testConfig(), reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp.Meter(TracerName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	m.RecordRequestStart(ctx, "GET", "api.example.com")
	m.RecordRequestEnd(ctx, "GET", "api.example.com", 200, 20*time.Millisecond)
	m.RecordRequestStart(ctx, "GET", "api.example.com")
	m.RecordRequestEnd(ctx, "GET", "api.example.com", 0, time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					got[md.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					got[md.Name] += int64(dp.Count)
				}
			}
		}
	}

	want := map[string]int64{
		MetricRequestTotal:    1,
		MetricRequestDuration: 1,
		MetricRequestActive:   0,
		MetricErrorTotal:      1,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s: expected %d, got %d", name, v, got[name])
		}
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.RecordRequestStart(context.Background(), "POST", "localhost")
	m.RecordRequestEnd(context.Background(), "POST", "localhost", 500, time.Second)
}

func TestProvider_Disabled(t *testing.T) {
	p := NewProvider(Config{}, nil)
	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metrics() != nil {
		t.Error("expected nil metrics when disabled")
	}
	if h := p.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s", h.Status)
	}
	if d := p.Describe(); d.Details != "disabled" {
		t.Errorf("expected disabled description, got %q", d.Details)
	}
	if err := p.Stop(ctx); err != nil {
		t.Errorf("unexpected stop error: %v", err)
	}
}

func TestProvider_InvalidConfig(t *testing.T) {
	p := NewProvider(Config{Enabled: true}, nil)
	if err := p.Start(context.Background()); err == nil {
		t.Fatal("expected error without service name")
	}
	if h := p.Health(context.Background()); h.Status != component.StatusDegraded {
		t.Errorf("expected degraded after failed start, got %s", h.Status)
	}
}

func TestProvider_StartStop(t *testing.T) {
	p := NewProvider(Config{Enabled: true, ServiceName: "fetchkit-test", Endpoint: "127.0.0.1:1", Insecure: true}, nil)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metrics() == nil {
		t.Fatal("expected metrics after start")
	}
	if h := p.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s", h.Status)
	}

	// Nothing listens on the endpoint, so the final flush may fail.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = p.Stop(ctx)

	if p.Metrics() != nil {
		t.Error("expected metrics cleared after stop")
	}
}
