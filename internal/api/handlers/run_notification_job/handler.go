package run_notification_job

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
	dispatchNotifications "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/dispatch_notifications"
)

const msgUnknownJob = "unknown notification job"

type Handler struct {
	useCase DispatchNotificationsUseCase
	logger  Logger
}

func NewHandler(useCase DispatchNotificationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/notification-jobs/{jobType}/run
// Manual trigger for the scheduled jobs. Safe to call at any time because
// every job is idempotent.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	jobType := mux.Vars(r)["jobType"]

	result, err := h.useCase.Execute(r.Context(), jobType)
	if err != nil {
		switch {
		case errors.Is(err, dispatchNotifications.ErrUnknownJob):
			h.logger.Warn("POST /notification-jobs/%s/run - Unknown job", jobType)
			handlers.RespondNotFound(w, msgUnknownJob)
		default:
			h.logger.Error("POST /notification-jobs/%s/run - Failed: %v", jobType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notification-jobs/%s/run - Done: total=%d sent=%d failed=%d skipped=%d",
		jobType, result.Total, result.Sent, result.Failed, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
