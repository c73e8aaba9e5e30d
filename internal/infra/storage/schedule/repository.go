package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/pkg/dbmetrics"
	"github.com/ufjf-cead/StudioBookingService/pkg/psqlbuilder"
)

// Repository репозиторий расписания команды: недельные окна доступности
// и даты недоступности (blackout)
// Обе коллекции редактируются только административной поверхностью,
// движок бронирования их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindows получает все недельные окна доступности команды
// Отсортированы по дню недели и времени начала
func (r *Repository) ListWindows(ctx context.Context) ([]*domain.TeamWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"start_time",
		"end_time",
	).
		From("team_windows").
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.TeamWindow, 0)
	for rows.Next() {
		var window domain.TeamWindow
		if err := rows.Scan(
			&window.ID,
			&window.Weekday,
			&window.StartTime,
			&window.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: ListWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// ListBlackoutsBetween получает даты недоступности команды в интервале [from, to]
func (r *Repository) ListBlackoutsBetween(ctx context.Context, from, to time.Time) ([]*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"blackout_date",
	).
		From("team_blackouts").
		Where(squirrel.GtOrEq{"blackout_date": from}).
		Where(squirrel.LtOrEq{"blackout_date": to}).
		OrderBy("blackout_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackoutsBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackoutsBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.Blackout, 0)
	for rows.Next() {
		var blackout domain.Blackout
		if err := rows.Scan(&blackout.ID, &blackout.Date); err != nil {
			return nil, fmt.Errorf("%w: ListBlackoutsBetween - scan row: %v", ErrScanRow, err)
		}
		blackouts = append(blackouts, &blackout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlackoutsBetween - rows error: %v", ErrScanRow, err)
	}

	return blackouts, nil
}
