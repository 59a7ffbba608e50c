// Package observability wires OpenTelemetry tracing and metrics for the
// HTTP client.
//
//	p := observability.NewProvider(cfg, log)
//	registry.Register(p)
//	...
//	transport = httpclient.NewMetricsTransport(httpclient.NewTracingTransport(base, "billing"), p.Metrics())
package observability
