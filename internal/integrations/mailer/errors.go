package mailer

import "errors"

var (
	// ErrSendFailed is returned when the mail provider could not deliver.
	// Retryable: dispatch jobs record the failure and retry next run.
	ErrSendFailed = errors.New("mailer client: send failed")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse is returned when the provider answer cannot be parsed.
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
