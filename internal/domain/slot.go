package domain

import (
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// SlotStatus classifies a slot for the booking UI.
type SlotStatus string

const (
	SlotOpen   SlotStatus = "open"
	SlotFull   SlotStatus = "full"
	SlotClosed SlotStatus = "closed"
)

// Slot is a derived view: one (course, date, time) bookable unit.
// BookedPax is always computed from live reservation aggregates,
// never from a stored counter.
type Slot struct {
	CourseID     int64
	CourseTitle  string
	HeliportID   int64
	Date         time.Time
	Time         types.TimeString
	MaxPax       int
	BookedPax    int
	AvailablePax int
	Status       SlotStatus
}

// IsFull reports whether no seats remain.
func (s *Slot) IsFull() bool {
	return s.AvailablePax <= 0
}

// PaxAggregate is the per-(course, time) sum of held passengers on a date.
type PaxAggregate struct {
	CourseID int64
	Time     types.TimeString
	Pax      int
}
