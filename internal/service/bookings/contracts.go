package bookings

import (
	"context"
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRequester(ctx context.Context, requesterID int64, includeRejected bool) ([]*domain.Booking, error)
	Reject(ctx context.Context, bookingID int64, note *string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
