package httpclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
)

// Component owns the application's client: it builds it in Start and
// releases idle connections in Stop. Callers fetch the client with Client
// after Start and pass it on; there is no package-level instance.
type Component struct {
	config Config
	opts   []Option

	mu     sync.RWMutex
	client *Client
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates an unstarted client component.
func NewComponent(cfg Config, opts ...Option) *Component {
	cfg.ApplyDefaults()
	return &Component{config: cfg, opts: opts}
}

func (c *Component) Name() string { return c.config.Name }

// Start builds the client.
func (c *Component) Start(_ context.Context) error {
	client, err := NewFromConfig(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.client = client
	c.mu.Unlock()
	client.log.Debug("client ready", logger.Fields("name", c.config.Name, "base_url", c.config.BaseURL))
	return nil
}

// Stop closes idle connections of the base transport, also when it was
// decorated with WrapTransport.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()

	if client != nil {
		client.Close()
	}
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.Client() == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	}
	return h
}

func (c *Component) Describe() component.Description {
	base := c.config.BaseURL
	if base == "" {
		base = "(no base url)"
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "httpclient",
		Details: fmt.Sprintf("%s http2=%t credentials=%t", base, c.config.HTTP2, c.config.WithCredentials),
	}
}

// Client returns the client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}
