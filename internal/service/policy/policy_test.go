package policy_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/policy"
)

func TestEngine_Evaluate_DefaultTiers(t *testing.T) {
	engine := policy.NewEngine(nil)

	tests := []struct {
		name          string
		daysBefore    int
		cause         domain.CancellationCause
		wantFee       int
		wantRefund    int
	}{
		{"ten days ahead refunds in full", 10, domain.CauseCustomer, 0, 100},
		{"exactly seven days refunds in full", 7, domain.CauseCustomer, 0, 100},
		{"five days ahead refunds 70", 5, domain.CauseCustomer, 30, 70},
		{"exactly four days refunds 70", 4, domain.CauseCustomer, 30, 70},
		{"three days ahead refunds 50", 3, domain.CauseCustomer, 50, 50},
		{"two days ahead refunds 50", 2, domain.CauseCustomer, 50, 50},
		{"one day ahead refunds nothing", 1, domain.CauseCustomer, 100, 0},
		{"same day refunds nothing", 0, domain.CauseCustomer, 100, 0},
		{"no-show refunds nothing", -1, domain.CauseCustomer, 100, 0},
		{"weather always refunds in full", 0, domain.CauseWeather, 0, 100},
		{"mechanical always refunds in full", 1, domain.CauseMechanical, 0, 100},
		{"operator always refunds in full", -2, domain.CauseOperator, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Evaluate(tt.daysBefore, tt.cause)
			assert.Equal(t, tt.wantFee, got.FeePercent)
			assert.Equal(t, tt.wantRefund, got.RefundPercent)
		})
	}
}

func TestEngine_Evaluate_CustomTiers(t *testing.T) {
	engine := policy.NewEngine([]domain.PolicyTier{
		{DaysBefore: 0, RefundPercent: 20},
		{DaysBefore: 14, RefundPercent: 100},
	})

	assert.Equal(t, 100, engine.Evaluate(14, domain.CauseCustomer).RefundPercent)
	assert.Equal(t, 20, engine.Evaluate(13, domain.CauseCustomer).RefundPercent)
	assert.Equal(t, 20, engine.Evaluate(0, domain.CauseCustomer).RefundPercent)
	assert.Equal(t, 0, engine.Evaluate(-1, domain.CauseCustomer).RefundPercent)
}

func TestDaysBefore(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		flightAt time.Time
		want     int
	}{
		{"a week out", time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC), 7},
		{"partial day floors down", time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC), 6},
		{"later today", time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC), 0},
		{"earlier today is negative", time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), -1},
		{"yesterday", time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.DaysBefore(tt.flightAt, now))
		})
	}
}

func TestAssessment_Amounts(t *testing.T) {
	price, err := decimal.NewFromString("35000.00")
	require.NoError(t, err)

	a := policy.Assessment{FeePercent: 30, RefundPercent: 70}
	assert.Equal(t, "24500.00", a.RefundAmount(price).StringFixed(2))
	assert.Equal(t, "10500.00", a.FeeAmount(price).StringFixed(2))

	// Fee and refund always reassemble the full price, rounding included.
	odd, err := decimal.NewFromString("99.99")
	require.NoError(t, err)
	half := policy.Assessment{FeePercent: 50, RefundPercent: 50}
	assert.True(t, half.RefundAmount(odd).Add(half.FeeAmount(odd)).Equal(odd))
}
