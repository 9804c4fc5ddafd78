package payment

import "errors"

var (
	// ErrUnavailable is returned when the gateway cannot be reached or
	// times out. Retryable: the caller may try again later.
	ErrUnavailable = errors.New("payment client: gateway unavailable")

	// ErrRefundRejected is returned when the gateway permanently refuses
	// the refund command. Not retryable without operator intervention.
	ErrRefundRejected = errors.New("payment client: refund rejected")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse is returned when the gateway answer cannot be parsed.
	ErrInvalidResponse = errors.New("payment client: invalid response")
)
