package confirm_payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// ReservationRepository is the persistence surface this use case needs.
type ReservationRepository interface {
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Reservation, error)
	Confirm(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, cause domain.CancellationCause, reason string, fee *decimal.Decimal, paymentStatus *domain.PaymentStatus) error
}

// AuditRepository appends audit log entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface this use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
