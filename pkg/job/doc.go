// Package job runs background tasks on top of River ([github.com/riverqueue/river])
// using the application's PostgreSQL pool.
//
// Tasks are plain types discovered by structural typing. An on-demand task
// has Name() and Handle(ctx, Payload):
//
//	type BackfillTask struct{ assigner *catalog.SlugAssigner }
//
//	func (t *BackfillTask) Name() string { return "catalog.backfill_slugs" }
//	func (t *BackfillTask) Handle(ctx context.Context, _ BackfillPayload) error {
//		_, err := t.assigner.BackfillAllMissingSlugs(ctx)
//		return err
//	}
//
// A scheduled task has Name(), Schedule() (five-field cron expression parsed
// with [github.com/robfig/cron/v3]) and Handle(ctx).
//
//	manager, err := job.NewManager(pool,
//		job.WithLogger(log),
//		job.WithTask[catalog.BackfillPayload](catalog.NewBackfillTask(assigner, log)),
//		job.WithScheduledTask(catalog.NewScheduledBackfill(assigner, log, "0 3 * * *")),
//	)
//	if err := manager.Start(ctx); err != nil { ... }
//	defer manager.Stop(context.Background())
//
//	err = manager.Enqueue(ctx, "catalog.backfill_slugs", nil, job.UniqueFor(time.Minute))
//
// All tasks share one River job kind; the task name inside the job args
// selects the handler. River's own tables must exist (run River's
// migrations before starting a Manager).
package job
