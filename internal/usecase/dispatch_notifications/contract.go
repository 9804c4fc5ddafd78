package dispatch_notifications

import (
	"context"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/internal/integrations/mailer"
)

// ReservationRepository is the persistence surface this use case needs.
type ReservationRepository interface {
	ListConfirmedBefore(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	Complete(ctx context.Context, id int64) error
}

// NotificationRepository records sends and answers idempotency checks.
type NotificationRepository interface {
	Record(ctx context.Context, rec *domain.NotificationRecord) error
	HasSent(ctx context.Context, reservationID int64, jobType string) (bool, error)
}

// AuditRepository appends audit log entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
}

// MailerClient sends transactional mail.
type MailerClient interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// TransactionManager runs per-reservation updates atomically.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swapped out in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface this use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
