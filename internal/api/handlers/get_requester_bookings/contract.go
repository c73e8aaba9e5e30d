package get_requester_bookings

import (
	"context"

	"github.com/ufjf-cead/StudioBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetRequesterBookings(ctx context.Context, req *models.GetRequesterBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
