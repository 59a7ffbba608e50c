package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/fetchkit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	version         string
	out             io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = &d }
}

// WithVersion sets the version shown in the startup summary.
func WithVersion(v string) Option {
	return func(o *appOptions) { o.version = v }
}

// WithOutput sets where the startup summary is written. Default os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) { o.out = w }
}
