package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is a bookable flight product. Created and edited by the CMS;
// this service only reads it. Price and capacity are immutable once a
// reservation references the course, so reservations snapshot them anyway.
type Course struct {
	ID              int64
	Title           string
	Description     string
	Price           decimal.Decimal // per passenger
	DurationMinutes int
	MaxPax          int
	HeliportID      int64
	HeliportName    string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Heliport is the physical departure location of a course.
type Heliport struct {
	ID      int64
	Name    string
	Address string
}
