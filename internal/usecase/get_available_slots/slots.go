package get_available_slots

import (
	"sort"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// buildSlots derives the slot grid for one date: every active course crossed
// with every allowed departure time, with held pax subtracted.
func buildSlots(
	courses []*domain.Course,
	operating *domain.OperatingConfig,
	aggregates []domain.PaxAggregate,
	date time.Time,
) []domain.Slot {
	if operating.HolidayMode {
		return nil
	}

	held := make(map[slotKey]int, len(aggregates))
	for _, agg := range aggregates {
		held[slotKey{courseID: agg.CourseID, time: agg.Time}] = agg.Pax
	}

	slots := make([]domain.Slot, 0, len(courses)*len(operating.FlightTimes))
	for _, course := range courses {
		for _, flightTime := range operating.FlightTimes {
			booked := held[slotKey{courseID: course.ID, time: flightTime}]
			available := course.MaxPax - booked
			if available < 0 {
				available = 0
			}

			status := domain.SlotOpen
			if available == 0 {
				status = domain.SlotFull
			}

			slots = append(slots, domain.Slot{
				CourseID:     course.ID,
				CourseTitle:  course.Title,
				HeliportID:   course.HeliportID,
				Date:         date,
				Time:         flightTime,
				MaxPax:       course.MaxPax,
				BookedPax:    booked,
				AvailablePax: available,
				Status:       status,
			})
		}
	}

	sortSlots(slots)
	return slots
}

// dedupeByTime keeps one slot per departure time, preferring the one with
// the most seats left. Used by calendar views that only need to know
// whether a time is bookable at all.
func dedupeByTime(slots []domain.Slot) []domain.Slot {
	best := make(map[types.TimeString]domain.Slot, len(slots))
	for _, slot := range slots {
		current, ok := best[slot.Time]
		if !ok || slot.AvailablePax > current.AvailablePax {
			best[slot.Time] = slot
		}
	}

	deduped := make([]domain.Slot, 0, len(best))
	for _, slot := range best {
		deduped = append(deduped, slot)
	}
	sortSlots(deduped)
	return deduped
}

func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Time != slots[j].Time {
			return slots[i].Time.IsBefore(slots[j].Time)
		}
		return slots[i].CourseID < slots[j].CourseID
	})
}

type slotKey struct {
	courseID int64
	time     types.TimeString
}
