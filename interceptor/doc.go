// Package interceptor provides an ordered, mutable registry of handler pairs
// that transform a value as it flows through a pipeline.
//
// A Manager holds slots registered with Use. Each slot carries an optional
// Fulfilled handler (transforms the current value) and an optional Rejected
// handler (recovers from an error). Slots are addressed by a stable HandlerID;
// Eject turns a slot into a tombstone without shifting the others, so ids stay
// valid and chain runs already in progress are not disturbed.
//
// # Usage
//
//	m := interceptor.NewManager[Config]()
//	id := m.Use(func(ctx context.Context, c *Config) (*Config, error) {
//	    c.Headers["X-Trace"] = "1"
//	    return c, nil
//	}, nil)
//
//	out, err := m.RunFulfilled(ctx, &Config{})
//	m.Eject(id)
//
// Handlers return a nil value to keep the current one.
package interceptor
