package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// It is stored as text and compared lexicographically, which is safe
// because the format is zero-padded 24-hour time.
type TimeString string

var errInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// NewTimeString builds a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks the "HH:MM" format.
func (t TimeString) Validate() error {
	if _, err := time.Parse("15:04", string(t)); err != nil {
		return errInvalidTimeString
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// The result wraps within a single day is not expected by callers; an error
// is returned when the shift crosses midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return "", errInvalidTimeString
	}
	shifted := parsed.Add(time.Duration(minutes) * time.Minute)
	if shifted.Day() != parsed.Day() {
		return "", fmt.Errorf("time %s + %d minutes crosses midnight", t, minutes)
	}
	return TimeString(shifted.Format("15:04")), nil
}

// At combines a calendar date with the time of day into a full timestamp
// in the date's location.
func (t TimeString) At(date time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return time.Time{}, errInvalidTimeString
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// Value implements driver.Valuer so the type can be written directly.
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	return nil
}
