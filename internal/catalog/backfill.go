package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// BackfillReport summarizes a backfill run. On abort it covers the products
// completed before the run stopped.
type BackfillReport struct {
	Found     int
	Processed int
	Skipped   int
	Failures  []BackfillFailure
	Duration  time.Duration
}

// BackfillFailure records a product whose slug could not be assigned.
type BackfillFailure struct {
	ProductID string
	Name      string
	Err       error
}

// BackfillAllMissingSlugs assigns a slug to every product that lacks one.
//
// Products are handled one at a time in creation order. A per-product failure
// is recorded and the run continues. An unavailable store aborts the run.
// Cancellation is honored between products: the product in flight still
// finishes its write, then ErrBackfillAborted is returned.
func (a *SlugAssigner) BackfillAllMissingSlugs(ctx context.Context) (report BackfillReport, err error) {
	start := a.now()
	defer func() { report.Duration = a.now().Sub(start) }()

	candidates, err := a.store.ListMissingSlug(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, errors.Join(ErrBackfillAborted, ctxErr)
		}
		return report, unavailable(err)
	}
	report.Found = len(candidates)

	a.logger.InfoContext(ctx, "slug backfill started", slog.Int("found", report.Found))

	work := context.WithoutCancel(ctx)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			a.logger.WarnContext(work, "slug backfill interrupted",
				slog.Int("processed", report.Processed),
				slog.Int("remaining", report.Found-report.Processed-report.Skipped),
			)
			return report, errors.Join(ErrBackfillAborted, err)
		}

		s, err := a.AssignAndStore(work, c.ID, c.Name)
		switch {
		case err == nil:
			report.Processed++
			a.logger.DebugContext(work, "slug assigned",
				slog.String("product_id", c.ID),
				slog.String("slug", s),
			)
		case errors.Is(err, ErrStoreUnavailable):
			a.logger.ErrorContext(work, "slug backfill aborted, store unavailable",
				slog.String("product_id", c.ID),
				slog.Any("error", err),
			)
			return report, err
		default:
			report.Skipped++
			report.Failures = append(report.Failures, BackfillFailure{ProductID: c.ID, Name: c.Name, Err: err})
			a.logger.ErrorContext(work, "slug assignment failed",
				slog.String("product_id", c.ID),
				slog.String("name", c.Name),
				slog.Any("error", err),
			)
		}
	}

	a.logger.InfoContext(ctx, "slug backfill finished",
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}
