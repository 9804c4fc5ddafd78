package dispatch_notifications

// Detail reports the outcome for one reservation in a batch.
type Detail struct {
	ReservationID int64  `json:"reservationId"`
	BookingNumber string `json:"bookingNumber"`
	EmailSent     bool   `json:"emailSent"`
	StatusUpdated bool   `json:"statusUpdated"`
	Error         string `json:"error,omitempty"`
}

// Summary reports one dispatcher run.
type Summary struct {
	Job           string   `json:"job"`
	Total         int      `json:"total"`
	Sent          int      `json:"sent"`
	Failed        int      `json:"failed"`
	Skipped       int      `json:"skipped"` // already handled on an earlier run
	StatusUpdated int      `json:"statusUpdated"`
	Details       []Detail `json:"details"`
}
