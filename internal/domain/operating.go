package domain

import (
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// OperatingConfig is the process-wide operating-hours configuration.
// FlightTimes is the allow-list of departure times; a slot whose time is not
// listed is unconditionally unavailable. HolidayMode closes every slot.
// Loaded from the store on every availability/booking request so an admin
// update takes effect without restarts.
type OperatingConfig struct {
	ID          int64
	HolidayMode bool
	FlightTimes []types.TimeString
	UpdatedBy   string
	UpdatedAt   time.Time
}

// AllowsTime reports whether a departure time is bookable under this config.
func (c *OperatingConfig) AllowsTime(t types.TimeString) bool {
	if c.HolidayMode {
		return false
	}
	for _, allowed := range c.FlightTimes {
		if allowed == t {
			return true
		}
	}
	return false
}
