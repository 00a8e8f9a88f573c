// Package httpserver runs an http.Server with graceful shutdown and exposes
// liveness and readiness handlers.
//
// Run blocks until the context is cancelled (typically by
// signal.NotifyContext in main) or the listener fails, then drains in-flight
// requests within the configured shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
