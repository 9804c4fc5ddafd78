package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, invalid := range []string{"9:30pm", "25:00", "12:60", "noon", ""} {
		_, err := NewTimeStringFromString(invalid)
		assert.Error(t, err, "%q must not parse", invalid)
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	shifted, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), shifted)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.Error(t, err, "crossing midnight is rejected")
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:45").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 14, 45, 0, 0, time.UTC), at)
}
