package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is anything with a start/stop lifecycle: an HTTP client
// instance, the telemetry exporters, the echo server.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is a one-line summary printed at startup.
type Description struct {
	// Name defaults to the component's Name().
	Name string
	// Type categorizes the component: "httpclient", "telemetry", "server".
	Type string
	// Details is free text, e.g. "https://api.example.com http2=true".
	Details string
}

// Describable is optionally implemented by Components.
type Describable interface {
	Describe() Description
}
