package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/pkg/dbmetrics"
	"github.com/ufjf-cead/StudioBookingService/pkg/psqlbuilder"
)

// notRejected условие активности: у бронирования нет маркера отклонения
const notRejected = "NOT EXISTS (SELECT 1 FROM rejected_bookings rb WHERE rb.booking_id = b.id)"

// Repository репозиторий бронирований и их временных блоков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateWithBlocks сохраняет бронирование вместе со всеми его блоками
// Вызывается только внутри транзакции коммиттера (через context) - либо всё,
// либо ничего; частично сохранённых бронирований быть не должно
func (r *Repository) CreateWithBlocks(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"requester_id",
			"space_id",
			"term_id",
			"note",
		).
		Values(
			booking.RequesterID,
			booking.SpaceID,
			booking.TermID,
			booking.Note,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithBlocks - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWithBlocks - execute insert: %v", ErrExecQuery, err)
	}
	booking.CreatedAt = createdAt.Time

	for i := range booking.Blocks {
		block := &booking.Blocks[i]
		block.BookingID = booking.ID

		query, args, err := psqlbuilder.Insert("time_blocks").
			Columns(
				"booking_id",
				"block_date",
				"start_time",
				"end_time",
			).
			Values(
				block.BookingID,
				block.Date,
				block.StartTime,
				block.EndTime,
			).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: CreateWithBlocks - build block insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID); err != nil {
			return nil, fmt.Errorf("%w: CreateWithBlocks - execute block insert: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetActiveBlocksBetween получает активные блоки с датой в интервале [from, to]
// spaceID nil - блоки всех пространств (для глобальных квот по месяцу/неделе)
// Внутри транзакции с фильтром по пространству строки блокируются (FOR UPDATE),
// чтобы два конкурентных коммита не прошли проверку пересечений одновременно
func (r *Repository) GetActiveBlocksBetween(ctx context.Context, spaceID *int64, from, to time.Time) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"tb.id",
		"tb.booking_id",
		"tb.block_date",
		"tb.start_time",
		"tb.end_time",
	).
		From("time_blocks tb").
		Join("bookings b ON b.id = tb.booking_id").
		Where(notRejected).
		Where(squirrel.GtOrEq{"tb.block_date": from}).
		Where(squirrel.LtOrEq{"tb.block_date": to}).
		OrderBy("tb.block_date ASC, tb.start_time ASC")

	if spaceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.space_id": *spaceID})
	}

	if dbmetrics.IsInTransaction(ctx) && spaceID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF tb, b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBlocksBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBlocksBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// GetByID получает бронирование со всеми блоками и данными отклонения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.requester_id",
		"b.space_id",
		"b.term_id",
		"b.note",
		"b.created_at",
		"rb.rejected_at",
		"rb.note",
	).
		From("bookings b").
		LeftJoin("rejected_bookings rb ON rb.booking_id = b.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.RequesterID,
		&booking.SpaceID,
		&booking.TermID,
		&booking.Note,
		&createdAt,
		&booking.RejectedAt,
		&booking.RejectedNote,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	booking.CreatedAt = createdAt.Time

	blocks, err := r.getBlocksByBookingIDs(ctx, []int64{booking.ID})
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		booking.Blocks = append(booking.Blocks, *block)
	}

	return &booking, nil
}

// GetByRequester получает бронирования пользователя с блоками
// includeRejected false - только активные
func (r *Repository) GetByRequester(ctx context.Context, requesterID int64, includeRejected bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.requester_id",
		"b.space_id",
		"b.term_id",
		"b.note",
		"b.created_at",
		"rb.rejected_at",
		"rb.note",
	).
		From("bookings b").
		LeftJoin("rejected_bookings rb ON rb.booking_id = b.id").
		Where(squirrel.Eq{"b.requester_id": requesterID}).
		OrderBy("b.created_at DESC")

	if !includeRejected {
		selectBuilder = selectBuilder.Where(notRejected)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime
		if err := rows.Scan(
			&booking.ID,
			&booking.RequesterID,
			&booking.SpaceID,
			&booking.TermID,
			&booking.Note,
			&createdAt,
			&booking.RejectedAt,
			&booking.RejectedNote,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByRequester - scan row: %v", ErrScanRow, err)
		}
		booking.CreatedAt = createdAt.Time
		bookings = append(bookings, &booking)
		ids = append(ids, booking.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - rows error: %v", ErrScanRow, err)
	}

	if len(bookings) == 0 {
		return bookings, nil
	}

	blocks, err := r.getBlocksByBookingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byBooking := make(map[int64][]*domain.TimeBlock)
	for _, block := range blocks {
		byBooking[block.BookingID] = append(byBooking[block.BookingID], block)
	}
	for _, booking := range bookings {
		for _, block := range byBooking[booking.ID] {
			booking.Blocks = append(booking.Blocks, *block)
		}
	}

	return bookings, nil
}

// CountActiveWithFutureBlocks считает активные бронирования пользователя,
// у которых есть хотя бы один блок с датой не раньше from
// Используется для лимита активных заявок на человека
func (r *Repository) CountActiveWithFutureBlocks(ctx context.Context, requesterID int64, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT b.id)").
		From("bookings b").
		Join("time_blocks tb ON tb.booking_id = b.id").
		Where(notRejected).
		Where(squirrel.Eq{"b.requester_id": requesterID}).
		Where(squirrel.GtOrEq{"tb.block_date": from}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveWithFutureBlocks - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveWithFutureBlocks - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Reject помечает бронирование отклонённым
// Физически ничего не удаляется: маркер убирает бронирование из математики
// занятости и квот, история остаётся для аудита
func (r *Repository) Reject(ctx context.Context, bookingID int64, note *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	existsQuery, existsArgs, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reject - build exists query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Reject - check booking exists: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Insert("rejected_bookings").
		Columns("booking_id", "note").
		Values(bookingID, note).
		Suffix("ON CONFLICT (booking_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reject - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reject - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reject - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyRejected
	}

	return nil
}

// getBlocksByBookingIDs получает блоки указанных бронирований
func (r *Repository) getBlocksByBookingIDs(ctx context.Context, bookingIDs []int64) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tb.id",
		"tb.booking_id",
		"tb.block_date",
		"tb.start_time",
		"tb.end_time",
	).
		From("time_blocks tb").
		Where(squirrel.Eq{"tb.booking_id": bookingIDs}).
		OrderBy("tb.block_date ASC, tb.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBlocksByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBlocksByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// scanBlocks сканирует результаты запроса в слайс блоков
func scanBlocks(rows *sql.Rows) ([]*domain.TimeBlock, error) {
	blocks := make([]*domain.TimeBlock, 0)

	for rows.Next() {
		var block domain.TimeBlock
		if err := rows.Scan(
			&block.ID,
			&block.BookingID,
			&block.Date,
			&block.StartTime,
			&block.EndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
