// Package policy computes cancellation fee and refund percentages.
// It is pure: every result depends only on the inputs (including the single
// `now` supplied by the caller), never on wall-clock reads of its own.
package policy

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// Assessment is the outcome of evaluating a cancellation.
// FeePercent + RefundPercent is always 100.
type Assessment struct {
	FeePercent    int
	RefundPercent int
}

// Engine evaluates cancellations against a tier table.
type Engine struct {
	tiers []domain.PolicyTier
}

// NewEngine builds an engine from the configured tiers. The table is
// sorted by lead time descending so evaluation walks from the most
// lenient tier downward and picks the first one satisfied.
func NewEngine(tiers []domain.PolicyTier) *Engine {
	if len(tiers) == 0 {
		tiers = domain.DefaultPolicyTiers
	}
	sorted := make([]domain.PolicyTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DaysBefore > sorted[j].DaysBefore
	})
	return &Engine{tiers: sorted}
}

// Evaluate returns the fee/refund split for a cancellation happening
// daysBeforeFlight days ahead of departure. Weather, mechanical and
// operator causes always refund in full; the tier table only applies to
// customer-fault cancellations.
func (e *Engine) Evaluate(daysBeforeFlight int, cause domain.CancellationCause) Assessment {
	if cause.IsOperatorFault() {
		return Assessment{FeePercent: 0, RefundPercent: 100}
	}

	for _, tier := range e.tiers {
		if daysBeforeFlight >= tier.DaysBefore {
			return Assessment{
				FeePercent:    100 - tier.RefundPercent,
				RefundPercent: tier.RefundPercent,
			}
		}
	}

	// Past the least lenient tier (includes no-shows with negative lead time).
	return Assessment{FeePercent: 100, RefundPercent: 0}
}

// DaysBefore computes the whole days remaining until departure,
// floored. A flight earlier than now yields a negative value.
func DaysBefore(flightAt, now time.Time) int {
	diff := flightAt.Sub(now)
	days := int(diff.Hours() / 24)
	if diff < 0 && diff.Hours()/24 != float64(days) {
		days--
	}
	return days
}

// RefundAmount applies the refund percentage to the price snapshot,
// rounded half up at two decimal places.
func (a Assessment) RefundAmount(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(a.RefundPercent))).Div(decimal.NewFromInt(100)).Round(2)
}

// FeeAmount is the retained portion of the price snapshot.
func (a Assessment) FeeAmount(price decimal.Decimal) decimal.Decimal {
	return price.Sub(a.RefundAmount(price))
}
