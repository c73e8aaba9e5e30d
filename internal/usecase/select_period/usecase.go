package select_period

import (
	"context"
	"errors"
	"fmt"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	limitsRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/limits"
	spaceRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/space"
	"github.com/ufjf-cead/StudioBookingService/internal/occupancy"
	"github.com/ufjf-cead/StudioBookingService/pkg/ptr"
)

// UseCase use case для фиксации выбранного периода бронирования
//
// Проверяет весь интервал [start, end] против актуальных данных и при
// успехе выпускает подписанный черновой токен, который клиент предъявляет
// при запросе свободных слотов и при финальной фиксации бронирования.
type UseCase struct {
	spaceRepo    SpaceRepository
	scheduleRepo ScheduleRepository
	limitsRepo   LimitsRepository
	bookingRepo  BookingRepository
	draftSigner  DraftSigner
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	scheduleRepo ScheduleRepository,
	limitsRepo LimitsRepository,
	bookingRepo BookingRepository,
	draftSigner DraftSigner,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:    spaceRepo,
		scheduleRepo: scheduleRepo,
		limitsRepo:   limitsRepo,
		bookingRepo:  bookingRepo,
		draftSigner:  draftSigner,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case фиксации периода
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectPeriod: requester=%d, space=%d, period=[%s, %s]",
		req.RequesterID, req.SpaceID, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectPeriod: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и усекаем границы периода до дат
	now := uc.timeProvider.Now()
	today := domain.TruncateToDate(now)
	start := domain.TruncateToDate(req.Start)
	end := domain.TruncateToDate(req.End)

	// 3. Получаем пространство
	space, err := uc.spaceRepo.GetActiveByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("SelectPeriod: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("SelectPeriod: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 4. Получаем лимиты бронирования
	limits, err := uc.limitsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, limitsRepo.ErrLimitsNotFound) {
			uc.logger.Error("SelectPeriod: booking limits not configured")
			return nil, ErrLimitsNotConfigured
		}
		uc.logger.Error("SelectPeriod: failed to get limits: %v", err)
		return nil, fmt.Errorf("%w: failed to get limits: %v", ErrInternal, err)
	}

	// 5. Проверяем границы периода против антецеденции и горизонта агенды
	minStart := today.AddDate(0, 0, limits.LeadTimeDays)
	horizon := today.AddDate(0, 0, limits.OpenHorizonDays)
	if start.Before(minStart) || end.After(horizon) {
		uc.logger.Warn("SelectPeriod: period [%s, %s] outside window [%s, %s]",
			start.Format(domain.DateFormat), end.Format(domain.DateFormat),
			minStart.Format(domain.DateFormat), horizon.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: period outside allowed window", ErrPeriodNotAvailable)
	}

	// 6. Получаем окна доступности команды
	windows, err := uc.scheduleRepo.ListWindows(ctx)
	if err != nil {
		uc.logger.Error("SelectPeriod: failed to get team windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get team windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Error("SelectPeriod: team has no availability windows")
		return nil, ErrTeamNotConfigured
	}

	windowsByWeekday := make(map[int]bool, len(windows))
	for _, w := range windows {
		windowsByWeekday[w.Weekday] = true
	}

	// 7. Получаем blackout-даты, блоки пространства и блоки для квот
	blackouts, err := uc.scheduleRepo.ListBlackoutsBetween(ctx, start, end)
	if err != nil {
		uc.logger.Error("SelectPeriod: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	fetchFrom := start.AddDate(0, 0, -space.BufferAfterDays)
	fetchTo := end.AddDate(0, 0, space.BufferBeforeDays)
	spaceBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, ptr.Ptr(space.ID), fetchFrom, fetchTo)
	if err != nil {
		uc.logger.Error("SelectPeriod: failed to get space blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get space blocks: %v", ErrInternal, err)
	}

	quotaFrom, quotaTo := occupancy.QuotaWindow(start, end)
	allBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, nil, quotaFrom, quotaTo)
	if err != nil {
		uc.logger.Error("SelectPeriod: failed to get quota blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get quota blocks: %v", ErrInternal, err)
	}

	// 8. Строим индекс занятости и проверяем весь период
	ix := occupancy.Build(space, spaceBlocks, allBlocks, blackouts)

	for _, d := range domain.DatesInRange(start, end) {
		if !windowsByWeekday[domain.ISOWeekday(d)] {
			uc.logger.Warn("SelectPeriod: date %s has no team availability", d.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: no team availability on %s", ErrPeriodNotAvailable, d.Format(domain.DateFormat))
		}
		if ix.IsBlocked(d) {
			uc.logger.Warn("SelectPeriod: date %s is blocked", d.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: date %s is blocked", ErrPeriodNotAvailable, d.Format(domain.DateFormat))
		}
	}

	// 9. Квоты по месяцам и неделям (глобальные, только зафиксированные блоки)
	for _, mk := range domain.MonthsInRange(start, end) {
		if ix.MonthCount(mk) >= limits.MaxPerMonth {
			uc.logger.Warn("SelectPeriod: month quota reached for %d-%02d", mk.Year, mk.Month)
			return nil, fmt.Errorf("%w: month quota reached", ErrPeriodNotAvailable)
		}
	}
	for _, wk := range domain.WeeksInRange(start, end) {
		if ix.WeekCount(wk) >= limits.MaxPerWeek {
			uc.logger.Warn("SelectPeriod: week quota reached for %d-W%02d", wk.Year, wk.Week)
			return nil, fmt.Errorf("%w: week quota reached", ErrPeriodNotAvailable)
		}
	}

	// 10. Дней в неделе и переход через границу недели
	daysPerWeek := domain.DaysPerWeek(start, end)
	for _, qty := range daysPerWeek {
		if qty > limits.MaxDaysPerWeek {
			uc.logger.Warn("SelectPeriod: max days per week exceeded")
			return nil, fmt.Errorf("%w: max days per week exceeded", ErrPeriodNotAvailable)
		}
	}
	if !limits.AllowCrossWeekEvents && len(daysPerWeek) > 1 {
		uc.logger.Warn("SelectPeriod: period crosses ISO week boundary")
		return nil, fmt.Errorf("%w: period crosses week boundary", ErrPeriodNotAvailable)
	}

	// 11. Выпускаем черновой токен периода
	token := uc.draftSigner.Sign(space.ID, start, end, now)

	uc.logger.Info("SelectPeriod: space=%d, period=[%s, %s] approved",
		space.ID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	return &Response{
		SpaceID:    space.ID,
		Start:      start,
		End:        end,
		DraftToken: token,
	}, nil
}
