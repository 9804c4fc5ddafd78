package record_refund

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	"github.com/daiki-lova/Privateskytour-sub000/internal/api/middleware"
	reservationsService "github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations/models"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
	msgNotRefundable        = "reservation is not awaiting a refund"
	msgRefundExceedsPrice   = "refund amount exceeds the reservation price"
	msgGatewayUnavailable   = "payment gateway is unavailable, try again later"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.RecordRefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/%d/refund - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Actor == "" {
		req.Actor = middleware.OperatorID(r.Context())
	}

	result, err := h.service.RecordRefund(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/%d/refund - Not found", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrNotRefundable):
			h.logger.Warn("POST /reservations/%d/refund - Not refundable", id)
			handlers.RespondError(w, http.StatusConflict, msgNotRefundable)

		case errors.Is(err, reservationsService.ErrRefundExceedsPrice):
			h.logger.Warn("POST /reservations/%d/refund - Amount exceeds price", id)
			handlers.RespondBadRequest(w, msgRefundExceedsPrice)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("POST /reservations/%d/refund - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reservationsService.ErrGatewayUnavailable):
			h.logger.Error("POST /reservations/%d/refund - Gateway unavailable: %v", id, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /reservations/%d/refund - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/%d/refund - Refund recorded", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
