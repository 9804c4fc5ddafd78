package operating

import (
	"context"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
)

// ConfigRepository persists the single operating configuration row.
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.OperatingConfig, error)
	Update(ctx context.Context, cfg *domain.OperatingConfig) error
}

// AuditRepository appends audit log entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
