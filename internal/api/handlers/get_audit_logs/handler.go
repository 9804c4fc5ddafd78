package get_audit_logs

import (
	"net/http"
	"strconv"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
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

// Handle GET /api/v1/audit-logs?targetTable=&targetId=&category=&limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.AuditLogFilter{Limit: defaultLimit}

	if raw := query.Get("targetTable"); raw != "" {
		filter.TargetTable = &raw
	}
	if raw := query.Get("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := query.Get("targetId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, "invalid targetId")
			return
		}
		filter.TargetID = &id
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			handlers.RespondBadRequest(w, "invalid limit")
			return
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			handlers.RespondBadRequest(w, "invalid offset")
			return
		}
		filter.Offset = offset
	}

	result, err := h.service.ListAuditLogs(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /audit-logs - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
