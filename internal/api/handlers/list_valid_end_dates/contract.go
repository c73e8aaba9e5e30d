package list_valid_end_dates

import (
	"context"

	listValidEndDates "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_valid_end_dates"
)

type ListValidEndDatesUseCase interface {
	Execute(ctx context.Context, req *listValidEndDates.Request) (*listValidEndDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
