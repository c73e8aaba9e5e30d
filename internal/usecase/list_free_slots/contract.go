package list_free_slots

import (
	"context"
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
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

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveBlocksBetween(ctx context.Context, spaceID *int64, from, to time.Time) ([]*domain.TimeBlock, error)
}

// DraftVerifier интерфейс для проверки черновых токенов периода
type DraftVerifier interface {
	Verify(token string, now time.Time) (*draft.Draft, error)
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
