package space

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/pkg/dbmetrics"
	"github.com/ufjf-cead/StudioBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с физическими пространствами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пространств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByID получает активное пространство по ID
func (r *Repository) GetActiveByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"note",
		"buffer_before_days",
		"buffer_after_days",
		"active",
	).
		From("spaces").
		Where(squirrel.Eq{"id": id, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - build select query: %v", ErrBuildQuery, err)
	}

	var space domain.Space
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&space.ID,
		&space.Name,
		&space.Note,
		&space.BufferBeforeDays,
		&space.BufferAfterDays,
		&space.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - scan space: %v", ErrScanRow, err)
	}

	return &space, nil
}

// ListActive получает все активные пространства
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"note",
		"buffer_before_days",
		"buffer_after_days",
		"active",
	).
		From("spaces").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		var space domain.Space
		if err := rows.Scan(
			&space.ID,
			&space.Name,
			&space.Note,
			&space.BufferBeforeDays,
			&space.BufferAfterDays,
			&space.Active,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		spaces = append(spaces, &space)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}
