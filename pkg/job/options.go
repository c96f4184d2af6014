package job

import (
	"context"
	"log/slog"
)

type config struct {
	registry   *taskRegistry
	queues     map[string]int
	logger     *slog.Logger
	schedules  []schedule
	maxWorkers int
}

type schedule struct {
	name string
	expr string
	run  scheduledTask
}

func newConfig() *config {
	return &config{
		registry: newTaskRegistry(),
		queues:   make(map[string]int),
	}
}

// Option configures the Manager.
type Option func(*config)

// WithTask registers an on-demand task.
// The payload type is passed explicitly: job.WithTask[Payload](task).
func WithTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) Option {
	return func(c *config) {
		c.registry.register(task.Name(), &typedTask[P, T]{task: task})
	}
}

// WithScheduledTask registers a periodic task.
// Schedule() must return a five-field cron expression.
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, schedule{
			name: task.Name(),
			expr: task.Schedule(),
			run:  task.Handle,
		})
	}
}

// WithQueue adds a named queue with its own worker count.
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if name != "" && workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithLogger sets the logger used by the Manager and River.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers sets the worker count of the default queue. Defaults to 10.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}
