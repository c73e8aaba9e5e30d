package select_period

import (
	"context"

	selectPeriod "github.com/ufjf-cead/StudioBookingService/internal/usecase/select_period"
)

type SelectPeriodUseCase interface {
	Execute(ctx context.Context, req *selectPeriod.Request) (*selectPeriod.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
