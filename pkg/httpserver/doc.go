// Package httpserver runs the HTTP API with graceful shutdown and exposes
// liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, log)
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second, map[string]httpserver.Check{
//		"postgres": pg.Healthcheck(pool),
//	}))
//	err := srv.Run(ctx, r)
//
// Run returns nil after a clean shutdown. Start failures wrap ErrStart and
// drain timeouts wrap ErrShutdown.
package httpserver
