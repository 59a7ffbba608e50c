package observability

import (
	"context"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/multierr"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
)

// Provider owns the tracer and meter providers as a component. When the
// config is disabled Start is a no-op and Metrics returns nil.
type Provider struct {
	cfg Config
	log *logger.Logger

	mu      sync.Mutex
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *Metrics
}

var _ component.Component = (*Provider)(nil)

// NewProvider returns an unstarted provider.
func NewProvider(cfg Config, log *logger.Logger) *Provider {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Provider{cfg: cfg, log: log.WithComponent("observability")}
}

func (p *Provider) Name() string { return "observability" }

// Start creates the exporters and registers them globally.
func (p *Provider) Start(ctx context.Context) error {
	if !p.cfg.Enabled {
		return nil
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	tp, err := InitTracer(ctx, p.cfg)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, p.cfg)
	if err != nil {
		return multierr.Append(err, tp.Shutdown(ctx))
	}
	metrics, err := NewMetrics(mp.Meter(TracerName))
	if err != nil {
		return multierr.Combine(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	p.mu.Lock()
	p.tp, p.mp, p.metrics = tp, mp, metrics
	p.mu.Unlock()

	p.log.Info("telemetry exporters started", logger.Fields(
		"endpoint", p.cfg.Endpoint,
		"sample_rate", p.cfg.SampleRate,
		"interval", p.cfg.MetricInterval.String(),
	))
	return nil
}

// Stop flushes and shuts down both providers.
func (p *Provider) Stop(ctx context.Context) error {
	p.mu.Lock()
	tp, mp := p.tp, p.mp
	p.tp, p.mp, p.metrics = nil, nil, nil
	p.mu.Unlock()

	var err error
	if tp != nil {
		err = multierr.Append(err, tp.Shutdown(ctx))
	}
	if mp != nil {
		err = multierr.Append(err, mp.Shutdown(ctx))
	}
	return err
}

func (p *Provider) Health(context.Context) component.Health {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := component.Health{Name: p.Name(), Status: component.StatusHealthy}
	if p.cfg.Enabled && p.tp == nil {
		h.Status = component.StatusDegraded
		h.Message = "exporters not running"
	}
	return h
}

func (p *Provider) Describe() component.Description {
	details := "disabled"
	if p.cfg.Enabled {
		details = fmt.Sprintf("otlp %s sample=%.2f", p.cfg.Endpoint, p.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}

// Metrics returns the HTTP client instruments, or nil before Start or
// when disabled.
func (p *Provider) Metrics() *Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}
