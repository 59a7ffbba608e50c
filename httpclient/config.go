package httpclient

import (
	"fmt"

	"github.com/kbukum/fetchkit/security"
	"github.com/kbukum/fetchkit/validation"
)

const defaultName = "http"

// Config is the file/env form of a client, loaded with package config.
type Config struct {
	// Name identifies the client in logs and the component registry.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prefixed to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"base_url"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// WithCredentials sends and stores cookies by default.
	WithCredentials bool `yaml:"with_credentials" mapstructure:"with_credentials"`

	// HTTP2 negotiates HTTP/2 over TLS.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("httpclient: %w", err)
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	return nil
}

// Defaults converts the config into client defaults.
func (c *Config) Defaults() Defaults {
	return Defaults{
		BaseURL:         c.BaseURL,
		Headers:         c.Headers,
		WithCredentials: c.WithCredentials,
	}
}

// NewFromConfig validates cfg and builds the client with an HTTPTransport.
// Extra options are applied after the transport, so WithTransport wins.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transport, err := NewHTTPTransport(TransportConfig{TLS: cfg.TLS, HTTP2: cfg.HTTP2})
	if err != nil {
		return nil, err
	}
	return New(cfg.Defaults(), append([]Option{WithTransport(transport)}, opts...)...), nil
}
