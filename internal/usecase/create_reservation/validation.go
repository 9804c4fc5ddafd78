package create_reservation

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

func validateRequest(req *Request) error {
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName too long", ErrInvalidInput)
	}

	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
	}

	if req.CourseID <= 0 {
		return fmt.Errorf("%w: courseId must be positive", ErrInvalidInput)
	}

	if req.FlightDate.IsZero() {
		return fmt.Errorf("%w: flightDate is required", ErrInvalidInput)
	}

	if req.FlightTime.IsZero() {
		return fmt.Errorf("%w: flightTime is required", ErrInvalidInput)
	}
	if err := req.FlightTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid flightTime format: %v", ErrInvalidInput, err)
	}

	if req.Pax < domain.MinPax {
		return fmt.Errorf("%w: pax must be at least %d", ErrInvalidInput, domain.MinPax)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// validateDate rejects flight dates before today. Same-day bookings stay
// allowed up to departure; the dispatcher handles late reminders.
func validateDate(flightDate, now time.Time) error {
	dateOnly := time.Date(flightDate.Year(), flightDate.Month(), flightDate.Day(), 0, 0, 0, 0, flightDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// heldPax sums the passengers of every capacity-holding reservation.
func heldPax(reservations []*domain.Reservation) int {
	total := 0
	for _, r := range reservations {
		if !r.HoldsCapacity() {
			continue
		}
		total += r.Pax
	}
	return total
}
