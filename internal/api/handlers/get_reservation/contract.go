package get_reservation

import (
	"context"

	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error)
	GetByBookingNumber(ctx context.Context, bookingNumber, customerToken string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
