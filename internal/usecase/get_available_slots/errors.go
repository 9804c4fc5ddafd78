package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCourseNotFound is returned when a course filter matches nothing.
	ErrCourseNotFound = errors.New("course not found")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("internal error")
)
