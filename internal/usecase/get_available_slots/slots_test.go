package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

var testDate = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func testCourses() []*domain.Course {
	return []*domain.Course{
		{ID: 1, Title: "Bay Cruise", HeliportID: 1, MaxPax: 5, Active: true},
		{ID: 2, Title: "Night Flight", HeliportID: 1, MaxPax: 3, Active: true},
	}
}

func testOperating() *domain.OperatingConfig {
	return &domain.OperatingConfig{
		FlightTimes: []types.TimeString{"10:00", "14:00"},
	}
}

func TestBuildSlots_NoReservations(t *testing.T) {
	slots := buildSlots(testCourses(), testOperating(), nil, testDate)

	require.Len(t, slots, 4) // 2 courses x 2 times
	for _, slot := range slots {
		assert.Equal(t, domain.SlotOpen, slot.Status)
		assert.Equal(t, 0, slot.BookedPax)
		assert.Equal(t, slot.MaxPax, slot.AvailablePax)
	}
}

func TestBuildSlots_SubtractsHeldPax(t *testing.T) {
	aggregates := []domain.PaxAggregate{
		{CourseID: 1, Time: "10:00", Pax: 3},
		{CourseID: 2, Time: "10:00", Pax: 3},
	}

	slots := buildSlots(testCourses(), testOperating(), aggregates, testDate)
	require.Len(t, slots, 4)

	byKey := make(map[slotKey]domain.Slot)
	for _, s := range slots {
		byKey[slotKey{courseID: s.CourseID, time: s.Time}] = s
	}

	partial := byKey[slotKey{courseID: 1, time: "10:00"}]
	assert.Equal(t, 3, partial.BookedPax)
	assert.Equal(t, 2, partial.AvailablePax)
	assert.Equal(t, domain.SlotOpen, partial.Status)

	full := byKey[slotKey{courseID: 2, time: "10:00"}]
	assert.Equal(t, 0, full.AvailablePax)
	assert.Equal(t, domain.SlotFull, full.Status)

	untouched := byKey[slotKey{courseID: 1, time: "14:00"}]
	assert.Equal(t, 5, untouched.AvailablePax)
}

func TestBuildSlots_HolidayModeEmptiesGrid(t *testing.T) {
	operating := testOperating()
	operating.HolidayMode = true

	slots := buildSlots(testCourses(), operating, nil, testDate)
	assert.Empty(t, slots)
}

func TestBuildSlots_SortedByTimeThenCourse(t *testing.T) {
	slots := buildSlots(testCourses(), testOperating(), nil, testDate)

	require.Len(t, slots, 4)
	assert.Equal(t, types.TimeString("10:00"), slots[0].Time)
	assert.Equal(t, int64(1), slots[0].CourseID)
	assert.Equal(t, types.TimeString("10:00"), slots[1].Time)
	assert.Equal(t, int64(2), slots[1].CourseID)
	assert.Equal(t, types.TimeString("14:00"), slots[2].Time)
}

func TestDedupeByTime_KeepsMostAvailable(t *testing.T) {
	aggregates := []domain.PaxAggregate{
		{CourseID: 1, Time: "10:00", Pax: 4}, // course 1 down to 1 seat
	}

	slots := buildSlots(testCourses(), testOperating(), aggregates, testDate)
	deduped := dedupeByTime(slots)

	require.Len(t, deduped, 2)
	// Course 2 has 3 seats at 10:00, course 1 only 1. Course 2 wins.
	assert.Equal(t, types.TimeString("10:00"), deduped[0].Time)
	assert.Equal(t, int64(2), deduped[0].CourseID)
	assert.Equal(t, 3, deduped[0].AvailablePax)
}

func TestHeldPaxNeverNegative(t *testing.T) {
	// An aggregate above capacity (e.g. after a capacity reduction in the
	// CMS) clamps to zero availability instead of going negative.
	aggregates := []domain.PaxAggregate{
		{CourseID: 2, Time: "10:00", Pax: 7},
	}

	slots := buildSlots(testCourses(), testOperating(), aggregates, testDate)

	for _, slot := range slots {
		if slot.CourseID == 2 && slot.Time == "10:00" {
			assert.Equal(t, 0, slot.AvailablePax)
			assert.Equal(t, domain.SlotFull, slot.Status)
		}
	}
}
