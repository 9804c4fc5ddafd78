package record_refund

import (
	"context"

	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	RecordRefund(ctx context.Context, id int64, req *models.RecordRefundRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
