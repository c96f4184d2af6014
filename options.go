package softshop

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/softshop/pkg/health"
)

// Option mutates App during New.
type Option func(*App)

// WithContext sets the parent of the signal context used by Run.
// Cancelling it shuts the server down like a signal would.
func WithContext(ctx context.Context) Option {
	return func(a *App) {
		if ctx != nil {
			a.baseCtx = ctx
		}
	}
}

// WithLogger sets the logger for lifecycle events and server errors.
// A nil logger keeps the discard default.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithAddress sets the listen address. Empty keeps ":8080".
func WithAddress(addr string) Option {
	return func(a *App) {
		if addr != "" {
			a.server.Addr = addr
		}
	}
}

// WithReadTimeout overrides the server read timeout (15s).
func WithReadTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.server.ReadTimeout = d
		}
	}
}

// WithWriteTimeout overrides the server write timeout (30s). Keep it above
// the per-request timeout middleware or responses get cut off.
func WithWriteTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.server.WriteTimeout = d
		}
	}
}

// WithMiddleware appends router-wide middleware. The first one given is the
// outermost.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers appends route groups mounted after the health endpoints.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithNotFoundHandler replaces chi's plain-text 404.
func WithNotFoundHandler(h http.HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler replaces chi's plain-text 405.
func WithMethodNotAllowedHandler(h http.HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithShutdownTimeout bounds server draining and hooks together (30s).
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.shutdownTimeout = d
		}
	}
}

// WithShutdownHook runs fn after the server stops accepting requests.
// Hooks run in registration order and share the shutdown deadline.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}

type healthConfig struct {
	livenessPath  string
	readinessPath string
	checks        health.Checks
	timeout       time.Duration
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures WithHealthChecks.
type HealthOption func(*healthConfig)

// WithLivenessPath moves the liveness probe off "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath moves the readiness probe off "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck registers a dependency probed on every readiness
// request. Checks run concurrently; a later check with the same name wins.
//
// Example:
//
//	softshop.WithHealthChecks(
//	    softshop.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    softshop.WithReadinessCheck("jobs", job.Healthcheck(manager)),
//	)
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name != "" && fn != nil {
			c.checks[name] = fn
		}
	}
}

// WithReadinessTimeout bounds a single readiness probe.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHealthChecks mounts the liveness and readiness probes.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
