package confirm_payment

import "errors"

var (
	// ErrInvalidInput is returned on malformed webhook payloads.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrReservationNotFound is returned when the booking number matches
	// no reservation.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidTransition is returned when the webhook arrives for a
	// reservation in a terminal state. The delivery is acknowledged as a
	// conflict so the gateway stops retrying.
	ErrInvalidTransition = errors.New("invalid reservation state transition")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("internal error")
)
