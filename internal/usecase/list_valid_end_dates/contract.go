package list_valid_end_dates

import (
	"context"
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// SpaceRepository интерфейс репозитория пространств
type SpaceRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Space, error)
}

// ScheduleRepository интерфейс репозитория расписания команды
type ScheduleRepository interface {
	ListWindows(ctx context.Context) ([]*domain.TeamWindow, error)
	ListBlackoutsBetween(ctx context.Context, from, to time.Time) ([]*domain.Blackout, error)
}

// LimitsRepository интерфейс репозитория лимитов бронирования
type LimitsRepository interface {
	Get(ctx context.Context) (*domain.BookingLimits, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveBlocksBetween(ctx context.Context, spaceID *int64, from, to time.Time) ([]*domain.TimeBlock, error)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
