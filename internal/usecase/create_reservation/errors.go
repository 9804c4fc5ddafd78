package create_reservation

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCourseNotFound is returned when the requested course does not
	// exist or is not active.
	ErrCourseNotFound = errors.New("course not found")

	// ErrInvalidDate is returned for flight dates in the past.
	ErrInvalidDate = errors.New("flight date cannot be in the past")

	// ErrTimeNotOperated is returned when the departure time is not on the
	// operating allow-list.
	ErrTimeNotOperated = errors.New("departure time is not operated")

	// ErrHolidayMode is returned while the operator has closed all slots.
	ErrHolidayMode = errors.New("reservations are closed for holidays")

	// ErrInvalidPax is returned when the requested pax can never fit the
	// course, regardless of how many seats are currently held.
	ErrInvalidPax = errors.New("pax exceeds course capacity")

	// ErrCapacityExceeded is returned when the requested pax does not fit
	// in the remaining slot capacity.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("internal error")
)
