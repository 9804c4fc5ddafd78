package get_available_slots

import (
	"context"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// ReservationRepository supplies the per-slot pax aggregates.
type ReservationRepository interface {
	AggregateHeldPax(ctx context.Context, date time.Time) ([]domain.PaxAggregate, error)
}

// CourseRepository reads tour courses.
type CourseRepository interface {
	ListActive(ctx context.Context) ([]*domain.Course, error)
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

// OperatingConfigRepository reads the operating configuration.
type OperatingConfigRepository interface {
	Get(ctx context.Context) (*domain.OperatingConfig, error)
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
