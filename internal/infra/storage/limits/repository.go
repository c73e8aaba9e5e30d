package limits

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/pkg/dbmetrics"
	"github.com/ufjf-cead/StudioBookingService/pkg/psqlbuilder"
)

// singletonID таблица booking_limits содержит ровно одну запись
const singletonID = 1

// Repository репозиторий глобальных лимитов бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лимитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает лимиты бронирования
// Возвращает ErrLimitsNotFound, если singleton-запись отсутствует
func (r *Repository) Get(ctx context.Context) (*domain.BookingLimits, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"max_per_month",
		"max_per_week",
		"max_days_per_week",
		"max_active_per_requester",
		"lead_time_days",
		"open_horizon_days",
		"allow_cross_week_events",
	).
		From("booking_limits").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var lim domain.BookingLimits
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lim.MaxPerMonth,
		&lim.MaxPerWeek,
		&lim.MaxDaysPerWeek,
		&lim.MaxActivePerRequester,
		&lim.LeadTimeDays,
		&lim.OpenHorizonDays,
		&lim.AllowCrossWeekEvents,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLimitsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan limits: %v", ErrScanRow, err)
	}

	return &lim, nil
}
