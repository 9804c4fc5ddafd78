package reservations

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/internal/integrations/payment"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/policy"
)

// ReservationRepository is the persistence surface this service needs.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, cause domain.CancellationCause, reason string, fee *decimal.Decimal, paymentStatus *domain.PaymentStatus) error
	Suspend(ctx context.Context, id int64, cause domain.CancellationCause, reason string) error
	RecordRefund(ctx context.Context, id int64, amount decimal.Decimal, refundedBy string) error
	ListRefundCandidates(ctx context.Context, limit, offset int) ([]*domain.Reservation, error)
}

// AuditRepository appends and lists audit log entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	List(ctx context.Context, filter domain.AuditLogFilter) ([]*domain.AuditLogEntry, error)
}

// PaymentClient issues refund commands against the external gateway.
type PaymentClient interface {
	IssueRefund(ctx context.Context, cmd payment.RefundCommand) error
}

// PolicyEngine computes the fee/refund split for a cancellation.
type PolicyEngine interface {
	Evaluate(daysBeforeFlight int, cause domain.CancellationCause) policy.Assessment
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swapped out in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface this service needs.
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
