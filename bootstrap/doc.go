// Package bootstrap runs fetchkit binaries through a uniform lifecycle.
//
// An App validates its config, initializes the global logger, starts the
// registered components in order, runs hooks, prints a startup summary and
// stops everything in reverse order on shutdown.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithVersion(version.Version))
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(srv)
//	return app.Run(ctx) // blocks until SIGINT/SIGTERM
//
// RunTask is the variant for one-shot commands: the task runs with a context
// canceled on SIGINT/SIGTERM and shutdown follows when it returns.
package bootstrap
