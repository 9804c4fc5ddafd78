package get_available_slots

import (
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// Request asks for the availability picture of one date.
type Request struct {
	Date     time.Time // calendar date to inspect
	CourseID *int64    // optional course filter
	Dedupe   bool      // collapse to one slot per departure time
}

// SlotView is one bookable unit in the response.
type SlotView struct {
	CourseID     int64  `json:"courseId"`
	CourseTitle  string `json:"courseTitle"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	MaxPax       int    `json:"maxPax"`
	BookedPax    int    `json:"bookedPax"`
	AvailablePax int    `json:"availablePax"`
	Status       string `json:"status"`
}

// Response lists the slots of the requested date. An empty list is a
// normal answer, not an error.
type Response struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

func toSlotView(s domain.Slot) SlotView {
	return SlotView{
		CourseID:     s.CourseID,
		CourseTitle:  s.CourseTitle,
		Date:         s.Date.Format(domain.DateFormat),
		Time:         s.Time.String(),
		MaxPax:       s.MaxPax,
		BookedPax:    s.BookedPax,
		AvailablePax: s.AvailablePax,
		Status:       string(s.Status),
	}
}
