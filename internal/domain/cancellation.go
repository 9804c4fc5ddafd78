package domain

// CancellationCause distinguishes who (or what) triggered a cancellation.
// Non-customer causes are never charged a fee.
type CancellationCause string

const (
	CauseCustomer   CancellationCause = "customer"
	CauseWeather    CancellationCause = "weather"
	CauseMechanical CancellationCause = "mechanical"
	CauseOperator   CancellationCause = "operator"
	CauseOther      CancellationCause = "other"
)

// IsOperatorFault reports whether the cause mandates a full refund
// regardless of timing.
func (c CancellationCause) IsOperatorFault() bool {
	return c == CauseWeather || c == CauseMechanical || c == CauseOperator
}

// ValidCancellationCause reports whether s names a known cause.
func ValidCancellationCause(s string) bool {
	switch CancellationCause(s) {
	case CauseCustomer, CauseWeather, CauseMechanical, CauseOperator, CauseOther:
		return true
	}
	return false
}

// PolicyTier is one row of the cancellation fee table: bookings cancelled at
// least DaysBefore days ahead of the flight are refunded RefundPercent.
type PolicyTier struct {
	DaysBefore    int
	RefundPercent int
}

// DefaultPolicyTiers is the canonical fee table, overridable from config.
var DefaultPolicyTiers = []PolicyTier{
	{DaysBefore: 7, RefundPercent: 100},
	{DaysBefore: 4, RefundPercent: 70},
	{DaysBefore: 2, RefundPercent: 50},
	{DaysBefore: 0, RefundPercent: 0},
}
