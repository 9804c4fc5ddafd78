package mailer

// Message templates rendered by the external mail provider.
const (
	TemplateBookingThanks  = "booking_thanks"
	TemplateFlightReminder = "flight_reminder"
)

// Message is one templated send request. The provider owns rendering;
// this service only hands over the booking facts.
type Message struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params"`
}

// SendResult is the provider's answer.
type SendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
