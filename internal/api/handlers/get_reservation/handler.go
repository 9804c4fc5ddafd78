package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	reservationsService "github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgMissingNumber        = "bookingNumber query parameter is required"
	msgReservationNotFound  = "reservation not found"
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

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/%d - Not found", id)
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("GET /reservations/%d - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleLookup GET /api/v1/reservations/lookup?bookingNumber=HT-XXXXXXXX&token=...
// The customer-facing lookup. The token must match the one issued at
// booking time; a mismatch reads as not found.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	bookingNumber := query.Get("bookingNumber")
	if bookingNumber == "" {
		handlers.RespondBadRequest(w, msgMissingNumber)
		return
	}
	token := query.Get("token")

	result, err := h.service.GetByBookingNumber(r.Context(), bookingNumber, token)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/lookup - Not found: number=%s", bookingNumber)
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("GET /reservations/lookup - Failed: number=%s, error=%v", bookingNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
