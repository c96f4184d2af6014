package job

import "errors"

var (
	// ErrUnknownTask is returned for task names that were never registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrInvalidPayload is returned when a payload does not decode into the task's type.
	ErrInvalidPayload = errors.New("job: invalid payload")

	ErrAlreadyStarted = errors.New("job: already started")
	ErrNotStarted     = errors.New("job: not started")

	// ErrPoolRequired is returned by NewManager when pool is nil.
	ErrPoolRequired = errors.New("job: pool is required")

	ErrHealthcheckFailed = errors.New("job: healthcheck failed")
)

var (
	errManagerNil        = errors.New("manager is nil")
	errManagerNotStarted = errors.New("manager not started")
)
