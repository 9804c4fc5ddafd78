package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when no reservation matches.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidTransition is returned when a lifecycle transition is
	// attempted from a state that does not permit it.
	ErrInvalidTransition = errors.New("invalid reservation state transition")

	// ErrReasonRequired is returned when a suspension carries no reason.
	ErrReasonRequired = errors.New("suspension reason is required")

	// ErrNotRefundable is returned when a refund is recorded for a
	// reservation that is not a refund candidate.
	ErrNotRefundable = errors.New("reservation is not awaiting a refund")

	// ErrRefundExceedsPrice is returned when the refund amount is larger
	// than the price snapshot.
	ErrRefundExceedsPrice = errors.New("refund amount exceeds reservation price")

	// ErrGatewayUnavailable is returned when the payment gateway could not
	// process the refund command. Nothing is recorded in that case.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
