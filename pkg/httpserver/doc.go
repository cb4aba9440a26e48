// Package httpserver runs the formguard HTTP surface with graceful shutdown.
//
// Server listens on Config.Addr, serves until its context ends and then
// drains in-flight requests for up to Config.ShutdownTimeout. Start and stop
// are logged through the supplied slog.Logger.
//
//	srv := httpserver.New(cfg, router, log)
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
//
// Listen failures wrap ErrStart and drain failures wrap ErrShutdown.
package httpserver
