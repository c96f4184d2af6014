package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a logger writing to stdout.
// Sentry is attached when cfg.Sentry.DSN is set.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	base := newStreamHandler(w, cfg)
	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...))
	}

	sentry, err := newSentryHandler(cfg.Sentry)
	if err != nil {
		slog.New(base).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(base, extractors...))
	}

	return slog.New(NewLogHandlerDecorator(newMultiHandler(base, sentry), extractors...))
}

func newStreamHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
