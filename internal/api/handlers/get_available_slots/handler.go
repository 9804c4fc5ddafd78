package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	getAvailableSlots "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "date query parameter is required"
	msgInvalidDate     = "invalid date, expected YYYY-MM-DD"
	msgInvalidCourseID = "invalid courseId"
	msgCourseNotFound  = "course not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD[&courseId=N][&dedupe=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawDate := query.Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %s", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableSlots.Request{
		Date:   date,
		Dedupe: query.Get("dedupe") == "true",
	}

	if rawCourseID := query.Get("courseId"); rawCourseID != "" {
		courseID, err := strconv.ParseInt(rawCourseID, 10, 64)
		if err != nil || courseID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidCourseID)
			return
		}
		req.CourseID = &courseID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrCourseNotFound):
			h.logger.Warn("GET /slots - Course not found")
			handlers.RespondNotFound(w, msgCourseNotFound)

		default:
			h.logger.Error("GET /slots - Failed to list slots: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
