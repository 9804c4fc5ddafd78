package suspend_reservation

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
	msgInvalidTransition    = "reservation cannot be suspended in its current state"
	msgReasonRequired       = "a suspension reason is required"
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

// Handle PATCH /api/v1/reservations/{reservationId}/suspend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.SuspendReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/%d/suspend - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Actor == "" {
		req.Actor = middleware.OperatorID(r.Context())
	}

	result, err := h.service.Suspend(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/%d/suspend - Not found", id)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/%d/suspend - Invalid transition", id)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, reservationsService.ErrReasonRequired):
			h.logger.Warn("PATCH /reservations/%d/suspend - Missing reason", id)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/%d/suspend - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /reservations/%d/suspend - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/%d/suspend - Suspended", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
