package create_reservation

import (
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// Request carries the data needed to book a slot.
type Request struct {
	CustomerName  string           // booking customer
	CustomerEmail string           // notification address
	CourseID      int64            // flight course to book
	FlightDate    time.Time        // calendar date (no time part)
	FlightTime    types.TimeString // departure time, e.g. "10:00"
	Pax           int              // passenger count
	Notes         *string          // optional free-form notes
}

// Response is the created reservation.
type Response struct {
	ID            int64
	BookingNumber string
	CustomerName  string
	CustomerEmail string
	CustomerToken string
	CourseID      int64
	FlightDate    time.Time
	FlightTime    types.TimeString
	Pax           int
	Price         string // total price snapshot, fixed to two decimals
	Status        string
	PaymentStatus string

	// Denormalized course data
	CourseTitle  string
	HeliportName string

	Notes *string

	BookedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
