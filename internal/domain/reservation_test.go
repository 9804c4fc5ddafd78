package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

func TestReservation_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    domain.ReservationStatus
		to      domain.ReservationStatus
		allowed bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusSuspended, true},
		{domain.StatusPending, domain.StatusCompleted, false},

		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusSuspended, true},
		{domain.StatusConfirmed, domain.StatusCompleted, true},
		{domain.StatusConfirmed, domain.StatusPending, false},

		{domain.StatusSuspended, domain.StatusCancelled, true},
		{domain.StatusSuspended, domain.StatusConfirmed, false},
		{domain.StatusSuspended, domain.StatusCompleted, false},

		{domain.StatusCancelled, domain.StatusConfirmed, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusCompleted, domain.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			r := &domain.Reservation{Status: tt.from}
			assert.Equal(t, tt.allowed, r.CanTransitionTo(tt.to))
		})
	}
}

func TestReservation_HoldsCapacity(t *testing.T) {
	holding := []domain.ReservationStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
	}
	for _, status := range holding {
		r := &domain.Reservation{Status: status}
		assert.True(t, r.HoldsCapacity(), "status %s should hold capacity", status)
	}

	released := []domain.ReservationStatus{domain.StatusCancelled, domain.StatusSuspended}
	for _, status := range released {
		r := &domain.Reservation{Status: status}
		assert.False(t, r.HoldsCapacity(), "status %s should release capacity", status)
	}
}

func TestReservation_IsRefundCandidate(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.ReservationStatus
		payment domain.PaymentStatus
		want    bool
	}{
		{"cancelled and paid", domain.StatusCancelled, domain.PaymentPaid, true},
		{"suspended and paid", domain.StatusSuspended, domain.PaymentPaid, true},
		{"cancelled but unpaid", domain.StatusCancelled, domain.PaymentUnpaid, false},
		{"cancelled and already refunded", domain.StatusCancelled, domain.PaymentRefunded, false},
		{"confirmed and paid", domain.StatusConfirmed, domain.PaymentPaid, false},
		{"cancelled after failed payment", domain.StatusCancelled, domain.PaymentFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.Reservation{Status: tt.status, PaymentStatus: tt.payment}
			assert.Equal(t, tt.want, r.IsRefundCandidate())
		})
	}
}

func TestReservation_FlightAt(t *testing.T) {
	r := &domain.Reservation{
		FlightDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		FlightTime: types.TimeString("10:30"),
	}

	at, err := r.FlightAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC), at)
}

func TestOperatingConfig_AllowsTime(t *testing.T) {
	cfg := &domain.OperatingConfig{
		FlightTimes: []types.TimeString{"09:00", "10:00"},
	}

	assert.True(t, cfg.AllowsTime("09:00"))
	assert.False(t, cfg.AllowsTime("09:30"))

	cfg.HolidayMode = true
	assert.False(t, cfg.AllowsTime("09:00"), "holiday mode closes every time")
}
