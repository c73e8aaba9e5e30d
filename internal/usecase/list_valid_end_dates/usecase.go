package list_valid_end_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	limitsRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/limits"
	spaceRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/space"
	"github.com/ufjf-cead/StudioBookingService/internal/occupancy"
	"github.com/ufjf-cead/StudioBookingService/pkg/ptr"
)

// UseCase use case для получения допустимых дат окончания бронирования
type UseCase struct {
	spaceRepo    SpaceRepository
	scheduleRepo ScheduleRepository
	limitsRepo   LimitsRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	scheduleRepo ScheduleRepository,
	limitsRepo LimitsRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:    spaceRepo,
		scheduleRepo: scheduleRepo,
		limitsRepo:   limitsRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case обхода допустимых дат окончания
//
// Обход идет от даты начала вперёд до горизонта агенды. Каждая кандидатная
// дата окончания проверяется против полного набора ограничений для всего
// интервала [start, end]; первый отказ завершает обход, поскольку ни одна
// более поздняя дата окончания уже не может пройти проверку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListValidEndDates: requester=%d, space=%d, start=%s",
		req.RequesterID, req.SpaceID, req.Start.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListValidEndDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и усекаем до даты
	now := uc.timeProvider.Now()
	today := domain.TruncateToDate(now)
	start := domain.TruncateToDate(req.Start)

	// 3. Получаем пространство
	space, err := uc.spaceRepo.GetActiveByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("ListValidEndDates: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("ListValidEndDates: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 4. Получаем лимиты бронирования
	limits, err := uc.limitsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, limitsRepo.ErrLimitsNotFound) {
			uc.logger.Error("ListValidEndDates: booking limits not configured")
			return nil, ErrLimitsNotConfigured
		}
		uc.logger.Error("ListValidEndDates: failed to get limits: %v", err)
		return nil, fmt.Errorf("%w: failed to get limits: %v", ErrInternal, err)
	}

	// 5. Проверяем, что дата начала находится в разрешённом окне
	minStart := today.AddDate(0, 0, limits.LeadTimeDays)
	horizon := today.AddDate(0, 0, limits.OpenHorizonDays)
	if start.Before(minStart) || start.After(horizon) {
		uc.logger.Warn("ListValidEndDates: start=%s outside window [%s, %s]",
			start.Format(domain.DateFormat), minStart.Format(domain.DateFormat), horizon.Format(domain.DateFormat))
		return nil, ErrInvalidStartDate
	}

	// 6. Получаем окна доступности команды
	windows, err := uc.scheduleRepo.ListWindows(ctx)
	if err != nil {
		uc.logger.Error("ListValidEndDates: failed to get team windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get team windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Error("ListValidEndDates: team has no availability windows")
		return nil, ErrTeamNotConfigured
	}

	windowsByWeekday := make(map[int]bool, len(windows))
	for _, w := range windows {
		windowsByWeekday[w.Weekday] = true
	}

	// 7. Получаем blackout-даты команды
	blackouts, err := uc.scheduleRepo.ListBlackoutsBetween(ctx, start, horizon)
	if err != nil {
		uc.logger.Error("ListValidEndDates: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	// 8. Получаем блоки пространства с запасом на буферные зоны
	fetchFrom := start.AddDate(0, 0, -space.BufferAfterDays)
	fetchTo := horizon.AddDate(0, 0, space.BufferBeforeDays)
	spaceBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, ptr.Ptr(space.ID), fetchFrom, fetchTo)
	if err != nil {
		uc.logger.Error("ListValidEndDates: failed to get space blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get space blocks: %v", ErrInternal, err)
	}

	// 9. Получаем блоки всех пространств для подсчёта квот (квоты глобальные)
	quotaFrom, quotaTo := occupancy.QuotaWindow(start, horizon)
	allBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, nil, quotaFrom, quotaTo)
	if err != nil {
		uc.logger.Error("ListValidEndDates: failed to get quota blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get quota blocks: %v", ErrInternal, err)
	}

	// 10. Строим индекс занятости
	ix := occupancy.Build(space, spaceBlocks, allBlocks, blackouts)

	// 11. Обход кандидатных дат окончания
	dates := make([]time.Time, 0)
	for end := start; !end.After(horizon); end = end.AddDate(0, 0, 1) {
		if !uc.rangeValid(ix, limits, windowsByWeekday, start, end) {
			break
		}
		dates = append(dates, end)
	}

	uc.logger.Info("ListValidEndDates: space=%d, start=%s, found %d end dates",
		space.ID, start.Format(domain.DateFormat), len(dates))

	return &Response{
		SpaceID: space.ID,
		Start:   start,
		Dates:   dates,
	}, nil
}

// rangeValid проверяет интервал [start, end] против всех ограничений
func (uc *UseCase) rangeValid(
	ix *occupancy.Index,
	limits *domain.BookingLimits,
	windowsByWeekday map[int]bool,
	start, end time.Time,
) bool {
	// Каждая дата интервала: день недели с окнами, без блокировок и blackout
	for _, d := range domain.DatesInRange(start, end) {
		if !windowsByWeekday[domain.ISOWeekday(d)] {
			return false
		}
		if ix.IsBlocked(d) {
			return false
		}
	}

	// Количество дней в каждой ISO-неделе интервала
	daysPerWeek := domain.DaysPerWeek(start, end)
	for _, qty := range daysPerWeek {
		if qty > limits.MaxDaysPerWeek {
			return false
		}
	}

	// Переход через границу недели
	if !limits.AllowCrossWeekEvents && len(daysPerWeek) > 1 {
		return false
	}

	// Квоты по затронутым месяцам и неделям (только уже зафиксированные блоки)
	for _, mk := range domain.MonthsInRange(start, end) {
		if ix.MonthCount(mk) >= limits.MaxPerMonth {
			return false
		}
	}
	for _, wk := range domain.WeeksInRange(start, end) {
		if ix.WeekCount(wk) >= limits.MaxPerWeek {
			return false
		}
	}

	return true
}
