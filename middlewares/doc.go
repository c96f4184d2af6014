// Package middlewares provides net/http middleware for the softshop HTTP server.
//
// Every middleware has the chi signature func(http.Handler) http.Handler and
// is registered with softshop.WithMiddleware.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing X-Request-ID (or one of
// DefaultRequestIDHeaders) when the caller sent one. Pass RequestIDExtractor
// to logger.New so every record written with the request context carries
// request_id:
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover turns a handler panic into a logged error and a 500 response. The
// response body is written by the responder set with WithRecoverResponder.
//
// # Timeout
//
// Timeout bounds the request context. Handlers see context.DeadlineExceeded
// from the store and map it like any other store failure.
//
// # CORS
//
// CORS answers preflight requests and adds Access-Control-* headers for
// allowed origins.
//
// # Recommended Middleware Order
//
//	softshop.WithMiddleware(
//	    middlewares.CORS(),
//	    middlewares.RequestID(),
//	    middlewares.Logger(log),
//	    middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	    middlewares.Timeout(10*time.Second),
//	)
package middlewares
