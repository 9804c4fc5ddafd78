package create_reservation

import (
	"errors"
	"net/http"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	createReservation "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid flight date, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid flight time, expected HH:MM"
	msgCourseNotFound     = "course not found"
	msgPastDate           = "flight date cannot be in the past"
	msgTimeNotOperated    = "no flights operate at the requested time"
	msgHolidayMode        = "reservations are currently closed"
	msgInvalidPax         = "pax exceeds the course capacity"
	msgCapacityExceeded   = "not enough seats left on the requested slot"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if req.FlightTime != "" && len(req.FlightTime) <= 5 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createReservation.ErrCourseNotFound):
			h.logger.Warn("POST /reservations - Course not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date: %s", req.FlightDate)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createReservation.ErrTimeNotOperated):
			h.logger.Warn("POST /reservations - Time not operated: %s", req.FlightTime)
			handlers.RespondUnprocessable(w, msgTimeNotOperated)

		case errors.Is(err, createReservation.ErrHolidayMode):
			h.logger.Warn("POST /reservations - Holiday mode active")
			handlers.RespondUnprocessable(w, msgHolidayMode)

		case errors.Is(err, createReservation.ErrInvalidPax):
			h.logger.Warn("POST /reservations - Pax above course capacity: course_id=%d, pax=%d",
				req.CourseID, req.Pax)
			handlers.RespondBadRequest(w, msgInvalidPax)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: course_id=%d, date=%s, time=%s, pax=%d",
				req.CourseID, req.FlightDate, req.FlightTime, req.Pax)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: course_id=%d, error=%v",
				req.CourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, number=%s",
		result.ID, result.BookingNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
