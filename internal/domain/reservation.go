package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// ReservationStatus is the lifecycle axis of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSuspended ReservationStatus = "suspended"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// PaymentStatus is the payment axis, tracked independently of the lifecycle.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Reservation is a capacity-holding booking of one flight slot.
// The price is a snapshot captured at booking time and never recomputed.
type Reservation struct {
	ID            int64
	BookingNumber string
	CustomerName  string
	CustomerEmail string
	CustomerToken string
	CourseID      int64
	FlightDate    time.Time
	FlightTime    types.TimeString
	Pax           int
	Price         decimal.Decimal
	Status        ReservationStatus
	PaymentStatus PaymentStatus

	// Denormalized course data for history display
	CourseTitle  string
	HeliportName string

	Notes *string

	CancellationCause  *CancellationCause
	CancellationReason *string
	CancelledAt        *time.Time
	FeeAmount          *decimal.Decimal

	SuspendedAt    *time.Time
	RefundedAt     *time.Time
	RefundedBy     *string
	RefundedAmount *decimal.Decimal

	BookedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsCapacity reports whether the reservation counts against slot capacity.
// Pending reservations hold their seats until payment resolves.
func (r *Reservation) HoldsCapacity() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed || r.Status == StatusCompleted
}

// IsTerminal reports whether the lifecycle has ended. Terminal reservations
// accept no further status transition; only paymentStatus may still move
// from paid to refunded.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// CanTransitionTo guards every lifecycle transition of the state machine.
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch r.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusSuspended
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusSuspended || next == StatusCompleted
	case StatusSuspended:
		return next == StatusCancelled
	default:
		return false
	}
}

// IsRefundCandidate reports whether money was collected but never returned.
func (r *Reservation) IsRefundCandidate() bool {
	return (r.Status == StatusCancelled || r.Status == StatusSuspended) &&
		r.PaymentStatus == PaymentPaid
}

// FlightAt combines the flight date and departure time.
func (r *Reservation) FlightAt() (time.Time, error) {
	return r.FlightTime.At(r.FlightDate)
}

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	CourseID      *int64
	FlightDate    *time.Time
	FlightTime    *types.TimeString
	Status        *ReservationStatus
	PaymentStatus *PaymentStatus
	OnlyHolding   bool // only reservations that hold capacity
}
