package commit_booking

import (
	"context"

	commitBooking "github.com/ufjf-cead/StudioBookingService/internal/usecase/commit_booking"
)

type CommitBookingUseCase interface {
	Execute(ctx context.Context, req *commitBooking.Request) (*commitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
