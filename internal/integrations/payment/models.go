package payment

import "github.com/shopspring/decimal"

// Webhook outcome values delivered by the gateway.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// RefundCommand instructs the gateway to return money for a reservation.
// This service only supplies amounts and reasons; gateway tokens and ledger
// details stay on the gateway side.
type RefundCommand struct {
	ReservationID int64           `json:"reservationId"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
}

// RefundResult is the gateway's answer to a refund command.
type RefundResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
