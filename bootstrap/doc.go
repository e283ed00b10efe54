// Package bootstrap runs a finite task with a uniform lifecycle: typed
// config validation, logger initialization, start and stop hooks, and
// cancellation on SIGINT or SIGTERM.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return cli.Run(ctx)
//	})
package bootstrap
