package get_operating_config

import (
	"errors"
	"net/http"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	operatingService "github.com/daiki-lova/Privateskytour-sub000/internal/service/operating"
)

const msgConfigNotFound = "operating configuration not found"

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

// Handle GET /api/v1/operating-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, operatingService.ErrConfigNotFound):
			h.logger.Error("GET /operating-config - Config row missing")
			handlers.RespondNotFound(w, msgConfigNotFound)
		default:
			h.logger.Error("GET /operating-config - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
