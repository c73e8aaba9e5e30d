package list_bookable_dates

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

// UseCase use case для получения дат, доступных для начала бронирования
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

// Execute выполняет use case получения доступных дат
//
// Дата доступна для начала бронирования, если:
//   - на её день недели у команды есть хотя бы одно окно доступности
//   - она не заблокирована буферной зоной существующего бронирования
//   - она не попадает на blackout-дату команды
//   - месячная квота бронирований в её месяце ещё не исчерпана
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListBookableDates: requester=%d, space=%d", req.RequesterID, req.SpaceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListBookableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и усекаем до даты
	now := uc.timeProvider.Now()
	today := domain.TruncateToDate(now)

	// 3. Получаем пространство
	space, err := uc.spaceRepo.GetActiveByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("ListBookableDates: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("ListBookableDates: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 4. Получаем лимиты бронирования
	limits, err := uc.limitsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, limitsRepo.ErrLimitsNotFound) {
			uc.logger.Error("ListBookableDates: booking limits not configured")
			return nil, ErrLimitsNotConfigured
		}
		uc.logger.Error("ListBookableDates: failed to get limits: %v", err)
		return nil, fmt.Errorf("%w: failed to get limits: %v", ErrInternal, err)
	}

	// 5. Получаем окна доступности команды
	windows, err := uc.scheduleRepo.ListWindows(ctx)
	if err != nil {
		uc.logger.Error("ListBookableDates: failed to get team windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get team windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Error("ListBookableDates: team has no availability windows")
		return nil, ErrTeamNotConfigured
	}

	// Индексируем окна по дню недели (ISO: 1 = понедельник)
	windowsByWeekday := make(map[int]bool, len(windows))
	for _, w := range windows {
		windowsByWeekday[w.Weekday] = true
	}

	// 6. Вычисляем кандидатное окно дат
	from := today.AddDate(0, 0, limits.LeadTimeDays)
	to := today.AddDate(0, 0, limits.OpenHorizonDays)
	if to.Before(from) {
		uc.logger.Warn("ListBookableDates: empty candidate window (lead=%d, horizon=%d)",
			limits.LeadTimeDays, limits.OpenHorizonDays)
		return &Response{SpaceID: space.ID, From: from, To: to, Dates: []time.Time{}}, nil
	}

	// 7. Получаем blackout-даты команды в кандидатном окне
	blackouts, err := uc.scheduleRepo.ListBlackoutsBetween(ctx, from, to)
	if err != nil {
		uc.logger.Error("ListBookableDates: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	// 8. Получаем блоки пространства с запасом на буферные зоны:
	// блок с датой D блокирует интервал [D-before, D+after], поэтому на окно
	// [from, to] влияют блоки с датами в [from-after, to+before]
	fetchFrom := from.AddDate(0, 0, -space.BufferAfterDays)
	fetchTo := to.AddDate(0, 0, space.BufferBeforeDays)
	spaceBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, ptr.Ptr(space.ID), fetchFrom, fetchTo)
	if err != nil {
		uc.logger.Error("ListBookableDates: failed to get space blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get space blocks: %v", ErrInternal, err)
	}

	// 9. Получаем блоки всех пространств для подсчёта месячных квот.
	// Квоты глобальные, поэтому пространство не фильтруем; окно расширяем
	// до границ затронутых месяцев, чтобы счётчики были полными.
	quotaFrom, quotaTo := occupancy.QuotaWindow(from, to)
	allBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, nil, quotaFrom, quotaTo)
	if err != nil {
		uc.logger.Error("ListBookableDates: failed to get quota blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get quota blocks: %v", ErrInternal, err)
	}

	// 10. Строим индекс занятости
	ix := occupancy.Build(space, spaceBlocks, allBlocks, blackouts)

	// 11. Отбираем доступные даты
	dates := make([]time.Time, 0)
	for _, d := range domain.DatesInRange(from, to) {
		if !windowsByWeekday[domain.ISOWeekday(d)] {
			continue
		}
		if ix.IsBlocked(d) {
			continue
		}
		if ix.MonthCount(domain.MonthKeyOf(d)) >= limits.MaxPerMonth {
			continue
		}
		dates = append(dates, d)
	}

	uc.logger.Info("ListBookableDates: space=%d, window=[%s, %s], found %d dates",
		space.ID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(dates))

	return &Response{
		SpaceID: space.ID,
		From:    from,
		To:      to,
		Dates:   dates,
	}, nil
}
