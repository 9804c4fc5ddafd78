package cancel_reservation

import (
	"context"

	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.CancellationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
