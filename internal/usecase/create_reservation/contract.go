package create_reservation

import (
	"context"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// ReservationRepository is the persistence surface this use case needs.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ListForSlot(ctx context.Context, courseID int64, date time.Time, flightTime types.TimeString, onlyHolding bool) ([]*domain.Reservation, error)
}

// CourseRepository reads tour courses.
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// OperatingConfigRepository reads the operating configuration.
type OperatingConfigRepository interface {
	Get(ctx context.Context) (*domain.OperatingConfig, error)
}

// AuditRepository appends audit log entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
}

// TransactionManager runs the capacity check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
