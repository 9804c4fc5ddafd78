package dispatch_notifications

import "errors"

var (
	// ErrUnknownJob is returned for job types the dispatcher does not know.
	ErrUnknownJob = errors.New("unknown notification job")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("internal error")
)
