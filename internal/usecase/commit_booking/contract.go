package commit_booking

import (
	"context"
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
	"github.com/ufjf-cead/StudioBookingService/internal/integrations/notifyservice"
	"github.com/ufjf-cead/StudioBookingService/internal/integrations/termservice"
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
	CreateWithBlocks(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveBlocksBetween(ctx context.Context, spaceID *int64, from, to time.Time) ([]*domain.TimeBlock, error)
	CountActiveWithFutureBlocks(ctx context.Context, requesterID int64, from time.Time) (int, error)
}

// DraftVerifier интерфейс для проверки черновых токенов периода
type DraftVerifier interface {
	Verify(token string, now time.Time) (*draft.Draft, error)
}

// TermServiceClient интерфейс клиента сервиса термов согласия
type TermServiceClient interface {
	GetTerm(ctx context.Context, termID int64) (*termservice.Term, error)
}

// NotifyServiceClient интерфейс клиента сервиса уведомлений
type NotifyServiceClient interface {
	SendBookingConfirmation(ctx context.Context, confirmation *notifyservice.BookingConfirmation) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
