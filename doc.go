// Package softshop wires the storefront HTTP server.
//
// The server is a thin lifecycle layer over a chi router: handlers declare
// their routes, middleware wraps the router, and Run blocks until SIGINT,
// SIGTERM, Stop or cancellation of the base context, then drains requests
// and runs shutdown hooks in order.
//
//	app := softshop.New(
//	    softshop.WithLogger(log),
//	    softshop.WithAddress(cfg.App.Addr),
//	    softshop.WithShutdownTimeout(cfg.App.ShutdownTimeout),
//	    softshop.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logger(log),
//	        middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	    ),
//	    softshop.WithHandlers(handlers.NewProducts(svc, log)),
//	    softshop.WithHealthChecks(
//	        softshop.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    ),
//	)
//
//	if err := app.Run(); err != nil {
//	    log.Error("server stopped", slog.Any("error", err))
//	}
//
// Handler exposes the configured router for tests and custom servers.
package softshop
