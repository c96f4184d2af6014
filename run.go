package softshop

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/softshop/pkg/health"
)

// Run starts the HTTP server and blocks until shutdown.
// It handles SIGINT and SIGTERM for graceful shutdown.
//
// Returns nil on clean shutdown, or an error if the server
// fails to start or shutdown hooks fail.
func (a *App) Run() error {
	handler := a.Handler()

	// Create signal-aware context
	baseCtx := a.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listen first to get actual address
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	a.server.Handler = handler

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal, Stop() call, or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case <-a.done:
	}

	a.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer shutdownCancel()

	var errs []error

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	// Hooks run after in-flight requests finished (close DB, etc.)
	for _, hook := range a.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			a.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		a.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	a.logger.Info("shutdown completed")
	return nil
}

// Stop triggers graceful shutdown programmatically.
// Useful for testing or when shutdown needs to be initiated from code.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	select {
	case <-a.done:
		// Already closed
	default:
		close(a.done)
	}
}

// setupRoutes configures the router with middleware, health endpoints and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.notFoundHandler)
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.methodNotAllowedHandler)
	}

	// chi requires middleware before any route
	a.router.Use(a.middlewares...)

	if a.healthConfig != nil {
		opts := []health.Option{health.WithLogger(a.logger)}
		if a.healthConfig.timeout > 0 {
			opts = append(opts, health.WithTimeout(a.healthConfig.timeout))
		}
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, opts...))
	}

	for _, h := range a.handlers {
		h.Routes(a.router)
	}
}
