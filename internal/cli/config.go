package cli

import (
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/httpclient"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/server"
)

const serviceName = "fetchkit"

// Config is the fetchkit.yml layout. Every key can also be set through a
// FETCHKIT_ environment variable, e.g. FETCHKIT_CLIENT_BASE_URL.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Client        httpclient.Config    `yaml:"client" mapstructure:"client"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	// Token is sent as a bearer token when set.
	Token string `yaml:"token" mapstructure:"token"`
}

func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Client.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

func (c *Config) Validate() error {
	return multierr.Combine(
		c.ServiceConfig.Validate(),
		c.Client.Validate(),
		c.Server.Validate(),
		c.Observability.Validate(),
	)
}

// loadConfig reads fetchkit.yml (or path), .env and FETCHKIT_* variables.
// The CLI logs at warn unless configured otherwise.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Name = serviceName
	cfg.Logging.Level = "warn"

	var opts []config.LoaderOption
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
