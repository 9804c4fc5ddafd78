package get_operating_config

import (
	"context"

	operatingService "github.com/daiki-lova/Privateskytour-sub000/internal/service/operating"
)

type OperatingService interface {
	Get(ctx context.Context) (*operatingService.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
