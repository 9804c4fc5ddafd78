package confirm_payment

// Payment outcomes reported by the gateway webhook.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Request is one webhook delivery from the payment gateway.
type Request struct {
	BookingNumber string // reservation the payment belongs to
	Outcome       string // "succeeded" or "failed"
	TransactionID string // gateway-side id, recorded for the audit trail
}

// Response acknowledges the delivery.
type Response struct {
	ReservationID int64  `json:"reservationId"`
	BookingNumber string `json:"bookingNumber"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	Applied       bool   `json:"applied"` // false when the delivery was a duplicate
}
