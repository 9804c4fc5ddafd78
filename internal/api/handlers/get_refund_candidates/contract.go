package get_refund_candidates

import (
	"context"

	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	ListRefundCandidates(ctx context.Context, limit, offset int) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
