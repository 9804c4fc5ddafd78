package get_audit_logs

import (
	"context"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) (*models.AuditLogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
