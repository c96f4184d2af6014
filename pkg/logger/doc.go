// Package logger builds [log/slog] loggers with context extraction and an
// optional Sentry fan-out.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"})
//	log.Info("catalog ready", slog.Int("products", 42))
//
// # Context Extractors
//
// A [ContextExtractor] pulls one attribute out of a context on every log
// call, so request-scoped values such as request IDs appear without being
// passed around:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id := middleware.GetReqID(ctx); id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//	log := logger.New(cfg, requestID)
//	log.InfoContext(r.Context(), "product created")
//
// # Sentry
//
// When Config.Sentry.DSN is set, records at warn level and above are also
// sent to Sentry; errors create issues. An empty DSN or a failed
// initialisation leaves stdout logging in place.
package logger
