package list_bookable_dates

import (
	"context"

	listBookableDates "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_bookable_dates"
)

type ListBookableDatesUseCase interface {
	Execute(ctx context.Context, req *listBookableDates.Request) (*listBookableDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
