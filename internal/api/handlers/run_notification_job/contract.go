package run_notification_job

import (
	"context"

	dispatchNotifications "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/dispatch_notifications"
)

type DispatchNotificationsUseCase interface {
	Execute(ctx context.Context, jobType string) (*dispatchNotifications.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
