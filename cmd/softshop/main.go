package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/softshop"
	"github.com/dmitrymomot/softshop/internal/catalog"
	"github.com/dmitrymomot/softshop/internal/config"
	"github.com/dmitrymomot/softshop/internal/handlers"
	"github.com/dmitrymomot/softshop/internal/repository"
	"github.com/dmitrymomot/softshop/middlewares"
	"github.com/dmitrymomot/softshop/pkg/db"
	"github.com/dmitrymomot/softshop/pkg/job"
	"github.com/dmitrymomot/softshop/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	// Closed after both the server and the workers have stopped.
	defer pool.Close()

	if !cfg.DB.SkipMigrations {
		if err := db.Migrate(ctx, pool, repository.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
			return err
		}
		if err := job.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	repo := repository.NewProductRepository(pool)
	assigner := catalog.NewSlugAssigner(repo,
		catalog.WithMaxAttempts(cfg.Catalog.SlugMaxAttempts),
		catalog.WithAssignerLogger(log.With(slog.String("component", "slugs"))),
	)
	svc := catalog.NewService(repo, assigner, catalog.WithServiceLogger(log))

	jobLog := log.With(slog.String("component", "jobs"))
	jobOpts := []job.Option{
		job.WithLogger(jobLog),
		job.WithMaxWorkers(cfg.Jobs.MaxWorkers),
		job.WithTask[catalog.BackfillPayload](catalog.NewBackfillTask(assigner, jobLog)),
	}
	if cfg.Jobs.BackfillSchedule != "" {
		jobOpts = append(jobOpts, job.WithScheduledTask(
			catalog.NewScheduledBackfill(assigner, jobLog, cfg.Jobs.BackfillSchedule),
		))
	}
	jobs, err := job.NewManager(pool, jobOpts...)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	app := softshop.New(
		softshop.WithContext(gctx),
		softshop.WithLogger(log),
		softshop.WithAddress(cfg.App.Addr),
		softshop.WithShutdownTimeout(cfg.App.ShutdownTimeout),
		softshop.WithMiddleware(
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.App.CORSOrigins...)),
			middlewares.RequestID(),
			middlewares.Logger(log),
			middlewares.Recover(
				middlewares.WithRecoverLogger(log),
				middlewares.WithRecoverResponder(handlers.RecoverResponder),
			),
			middlewares.Timeout(cfg.App.RequestTimeout),
		),
		softshop.WithNotFoundHandler(handlers.NotFound),
		softshop.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		softshop.WithHandlers(
			handlers.NewProducts(svc, log),
			handlers.NewAdmin(svc, jobs, log),
		),
		softshop.WithHealthChecks(
			softshop.WithReadinessCheck("postgres", db.Healthcheck(pool)),
			softshop.WithReadinessCheck("jobs", job.Healthcheck(jobs)),
		),
	)

	g.Go(func() error {
		return jobs.Run(gctx, cfg.Jobs.StopTimeout)
	})
	g.Go(func() error {
		err := app.Run()
		// A server that exits on its own takes the workers down with it.
		stop()
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
