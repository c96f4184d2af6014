package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	// OnPanic writes the response after a panic. Defaults to a plain 500.
	OnPanic           func(w http.ResponseWriter, r *http.Request, err *PanicError)
	Logger            *slog.Logger
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverLogger sets the logger for recovered panics.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRecoverResponder sets the function that writes the error response.
func WithRecoverResponder(fn func(w http.ResponseWriter, r *http.Request, err *PanicError)) RecoverOption {
	return func(cfg *RecoverConfig) {
		if fn != nil {
			cfg.OnPanic = fn
		}
	}
}

// Recover returns middleware that recovers from panics, logs them and
// answers with the configured responder.
// Request ID is automatically included via RequestIDExtractor() if configured.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Logger:    slog.New(slog.DiscardHandler),
		OnPanic: func(w http.ResponseWriter, _ *http.Request, _ *PanicError) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Propagate so net/http aborts the connection as intended.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var stack []byte
				// Allocate buffer only if stack traces are enabled
				if !cfg.DisablePrintStack {
					stack = make([]byte, cfg.StackSize)
					n := runtime.Stack(stack, false)
					stack = stack[:n]
				}

				attrs := []any{slog.Any("panic", rec), slog.String("path", r.URL.Path)}
				if stack != nil {
					attrs = append(attrs, slog.String("stack", string(stack)))
				}
				cfg.Logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				cfg.OnPanic(w, r, &PanicError{Value: rec, Stack: stack})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
