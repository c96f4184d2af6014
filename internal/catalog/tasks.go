package catalog

import (
	"context"
	"log/slog"
)

// BackfillTaskName is the job name of the slug backfill.
const BackfillTaskName = "catalog.backfill_slugs"

// BackfillPayload is the (empty) payload of an on-demand backfill job.
type BackfillPayload struct{}

// BackfillTask runs BackfillAllMissingSlugs as a background job.
// Per-product failures are logged and do not fail the job; only an aborted
// run is returned as an error so the job runner can retry it.
type BackfillTask struct {
	assigner *SlugAssigner
	logger   *slog.Logger
}

// NewBackfillTask creates the on-demand backfill task.
func NewBackfillTask(assigner *SlugAssigner, log *slog.Logger) *BackfillTask {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &BackfillTask{assigner: assigner, logger: log}
}

// Name implements the job task contract.
func (t *BackfillTask) Name() string { return BackfillTaskName }

// Handle implements the job task contract.
func (t *BackfillTask) Handle(ctx context.Context, _ BackfillPayload) error {
	return t.run(ctx)
}

func (t *BackfillTask) run(ctx context.Context) error {
	report, err := t.assigner.BackfillAllMissingSlugs(ctx)

	attrs := []any{
		slog.Int("found", report.Found),
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Duration("duration", report.Duration),
	}
	if err != nil {
		t.logger.ErrorContext(ctx, "slug backfill job failed", append(attrs, slog.Any("error", err))...)
		return err
	}
	t.logger.InfoContext(ctx, "slug backfill job done", attrs...)
	return nil
}

// ScheduledBackfill runs the backfill periodically on a cron schedule.
type ScheduledBackfill struct {
	task     *BackfillTask
	schedule string
}

// NewScheduledBackfill creates the periodic backfill task.
func NewScheduledBackfill(assigner *SlugAssigner, log *slog.Logger, schedule string) *ScheduledBackfill {
	return &ScheduledBackfill{task: NewBackfillTask(assigner, log), schedule: schedule}
}

// Name implements the scheduled task contract.
func (s *ScheduledBackfill) Name() string { return BackfillTaskName + ".scheduled" }

// Schedule returns the five-field cron expression.
func (s *ScheduledBackfill) Schedule() string { return s.schedule }

// Handle implements the scheduled task contract.
func (s *ScheduledBackfill) Handle(ctx context.Context) error {
	return s.task.run(ctx)
}
