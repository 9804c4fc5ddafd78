package update_operating_config

import (
	"errors"
	"net/http"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	"github.com/daiki-lova/Privateskytour-sub000/internal/api/middleware"
	operatingService "github.com/daiki-lova/Privateskytour-sub000/internal/service/operating"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgConfigNotFound     = "operating configuration not found"
)

type Handler struct {
	service OperatingService
	logger  Logger
}

func NewHandler(service OperatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/operating-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req operatingService.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /operating-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Actor == "" {
		req.Actor = middleware.OperatorID(r.Context())
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, operatingService.ErrInvalidInput):
			h.logger.Warn("PUT /operating-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, operatingService.ErrConfigNotFound):
			h.logger.Error("PUT /operating-config - Config row missing")
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("PUT /operating-config - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /operating-config - Updated (holidayMode=%t, flightTimes=%d)",
		result.HolidayMode, len(result.FlightTimes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
