package domain

import "time"

// NotificationStatus is the outcome of one send attempt.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationRecord is the durable marker of a dispatched communication.
// A sent record for (ReservationID, JobType) gates re-sends: scheduled jobs
// are re-runnable and must never deliver the same message twice.
type NotificationRecord struct {
	ID            int64
	ReservationID int64
	JobType       string
	Status        NotificationStatus
	Detail        string
	SentAt        time.Time
}
