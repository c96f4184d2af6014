package catalog

import "errors"

var (
	// ErrNotFound is returned when a product does not exist.
	ErrNotFound = errors.New("catalog: product not found")

	// ErrSlugConflict is returned by stores when another product already holds the slug.
	ErrSlugConflict = errors.New("catalog: slug already taken")

	// ErrUniquenessExhausted is returned when no free slug was found within the attempt cap.
	ErrUniquenessExhausted = errors.New("catalog: no unique slug within attempt limit")

	// ErrStoreUnavailable marks failures where the store cannot be reached at all.
	ErrStoreUnavailable = errors.New("catalog: product store unavailable")

	// ErrBackfillAborted is returned when a backfill stops on context cancellation.
	ErrBackfillAborted = errors.New("catalog: slug backfill aborted")

	// ErrInvalidInput is returned for missing or malformed input fields.
	ErrInvalidInput = errors.New("catalog: invalid input")

	// ErrSlugUnavailable is the user-facing failure of the creation path.
	ErrSlugUnavailable = errors.New("could not assign a unique identifier, please retry")
)
