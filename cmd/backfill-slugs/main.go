// Command backfill-slugs assigns slugs to every product that has none.
//
// It runs once and exits: 0 when every product was handled (individual
// failures are listed in the log), 1 when the run aborted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/softshop/internal/catalog"
	"github.com/dmitrymomot/softshop/internal/config"
	"github.com/dmitrymomot/softshop/internal/repository"
	"github.com/dmitrymomot/softshop/pkg/db"
	"github.com/dmitrymomot/softshop/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("slug backfill failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logger)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !cfg.DB.SkipMigrations {
		if err := db.Migrate(ctx, pool, repository.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
			return err
		}
	}

	assigner := catalog.NewSlugAssigner(repository.NewProductRepository(pool),
		catalog.WithMaxAttempts(cfg.Catalog.SlugMaxAttempts),
		catalog.WithAssignerLogger(log),
	)

	report, err := assigner.BackfillAllMissingSlugs(ctx)

	for _, f := range report.Failures {
		log.Warn("product skipped",
			slog.String("product_id", f.ProductID),
			slog.String("name", f.Name),
			slog.Any("error", f.Err),
		)
	}
	log.Info("slug backfill report",
		slog.Int("found", report.Found),
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Duration("duration", report.Duration),
	)

	if errors.Is(err, catalog.ErrBackfillAborted) {
		log.Warn("slug backfill interrupted, rerun to finish")
	}
	return err
}
