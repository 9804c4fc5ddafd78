package operating

import "errors"

var (
	// ErrConfigNotFound is returned when the operating configuration row
	// is missing. The migration seeds it, so this indicates a broken
	// deployment.
	ErrConfigNotFound = errors.New("operating configuration not found")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
