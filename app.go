package softshop

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server limits not exposed as options.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
)

// Handler declares routes on the application router.
type Handler interface {
	Routes(r chi.Router)
}

// App is the storefront HTTP server: router, probes and graceful shutdown.
// All configuration happens in New.
type App struct {
	baseCtx context.Context

	logger *slog.Logger

	server      *http.Server
	router      chi.Router
	listener    net.Listener // set during Run()
	middlewares []func(http.Handler) http.Handler
	handlers    []Handler

	notFoundHandler         http.HandlerFunc
	methodNotAllowedHandler http.HandlerFunc

	healthConfig *healthConfig

	shutdownTimeout time.Duration
	shutdownHooks   []func(ctx context.Context) error
	done            chan struct{} // closed by Stop
	setupOnce       sync.Once
	mu              sync.RWMutex
}

// New builds an App. Nothing listens until Run.
//
// Example:
//
//	app := softshop.New(
//	    softshop.WithLogger(log),
//	    softshop.WithAddress(":8080"),
//	    softshop.WithMiddleware(middlewares.RequestID()),
//	    softshop.WithHandlers(
//	        handlers.NewProducts(svc, log),
//	        handlers.NewAdmin(svc, jobs, log),
//	    ),
//	)
func New(opts ...Option) *App {
	router := chi.NewRouter()

	a := &App{
		router:          router,
		logger:          slog.New(slog.DiscardHandler),
		shutdownTimeout: 30 * time.Second,
		done:            make(chan struct{}),
		server: &http.Server{
			Addr:              ":8080",
			Handler:           router,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	a.server.ErrorLog = slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn)

	return a
}

// Handler returns the fully configured router.
// Routes are registered on the first call; Run uses the same handler.
func (a *App) Handler() http.Handler {
	a.setupOnce.Do(a.setupRoutes)
	return a.server.Handler
}

// Addr reports the bound address, or "" before Run has listened.
func (a *App) Addr() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}
