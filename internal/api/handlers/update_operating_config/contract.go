package update_operating_config

import (
	"context"

	operatingService "github.com/daiki-lova/Privateskytour-sub000/internal/service/operating"
)

type OperatingService interface {
	Update(ctx context.Context, req *operatingService.UpdateConfigRequest) (*operatingService.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
