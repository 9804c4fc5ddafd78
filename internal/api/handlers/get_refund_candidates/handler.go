package get_refund_candidates

import (
	"net/http"
	"strconv"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
)

const (
	defaultLimit = 50
	maxLimit     = 200
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

// Handle GET /api/v1/refund-candidates?limit=N&offset=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			handlers.RespondBadRequest(w, "invalid limit")
			return
		}
		if parsed > maxLimit {
			parsed = maxLimit
		}
		limit = parsed
	}

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handlers.RespondBadRequest(w, "invalid offset")
			return
		}
		offset = parsed
	}

	result, err := h.service.ListRefundCandidates(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("GET /refund-candidates - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
