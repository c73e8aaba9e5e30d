package list_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
	spaceRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/space"
	"github.com/ufjf-cead/StudioBookingService/internal/occupancy"
	"github.com/ufjf-cead/StudioBookingService/pkg/ptr"
)

// UseCase use case для получения свободных временных слотов периода
type UseCase struct {
	spaceRepo     SpaceRepository
	scheduleRepo  ScheduleRepository
	bookingRepo   BookingRepository
	draftVerifier DraftVerifier
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	draftVerifier DraftVerifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:     spaceRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		draftVerifier: draftVerifier,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения свободных слотов
//
// Для каждого дня одобренного периода берётся объединение окон доступности
// его дня недели, из которого вычитаются интервалы всех активных блоков,
// чья расширенная буферами зона накрывает этот день.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListFreeSlots: requester=%d", req.RequesterID)

	// 1. Валидация входных данных
	if req == nil || req.DraftToken == "" {
		uc.logger.Warn("ListFreeSlots: missing draft token")
		return nil, fmt.Errorf("%w: draft token is required", ErrInvalidInput)
	}

	// 2. Проверяем черновой токен периода
	now := uc.timeProvider.Now()
	d, err := uc.draftVerifier.Verify(req.DraftToken, now)
	if err != nil {
		if errors.Is(err, draft.ErrExpiredToken) {
			uc.logger.Warn("ListFreeSlots: draft token expired")
			return nil, ErrExpiredDraft
		}
		uc.logger.Warn("ListFreeSlots: invalid draft token: %v", err)
		return nil, ErrInvalidDraft
	}

	// 3. Получаем пространство
	space, err := uc.spaceRepo.GetActiveByID(ctx, d.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("ListFreeSlots: space id=%d not found", d.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("ListFreeSlots: failed to get space id=%d: %v", d.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 4. Получаем окна доступности команды и группируем по дню недели
	windows, err := uc.scheduleRepo.ListWindows(ctx)
	if err != nil {
		uc.logger.Error("ListFreeSlots: failed to get team windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get team windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Error("ListFreeSlots: team has no availability windows")
		return nil, ErrTeamNotConfigured
	}

	windowsByWeekday := make(map[int][]*domain.TeamWindow, len(windows))
	for _, w := range windows {
		windowsByWeekday[w.Weekday] = append(windowsByWeekday[w.Weekday], w)
	}

	// 5. Получаем блоки пространства с запасом на буферные зоны:
	// блок соседнего дня занимает свой интервал времени и в буферные дни
	fetchFrom := d.Start.AddDate(0, 0, -space.BufferAfterDays)
	fetchTo := d.End.AddDate(0, 0, space.BufferBeforeDays)
	spaceBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(ctx, ptr.Ptr(space.ID), fetchFrom, fetchTo)
	if err != nil {
		uc.logger.Error("ListFreeSlots: failed to get space blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get space blocks: %v", ErrInternal, err)
	}

	// 6. Раскладываем блоки по дням с учётом буферного расширения
	ix := occupancy.Build(space, spaceBlocks, nil, nil)

	// 7. Вычитаем занятые интервалы из окон доступности каждого дня
	days := make([]DaySlots, 0)
	for _, date := range domain.DatesInRange(d.Start, d.End) {
		slots := mergeWindows(windowsByWeekday[domain.ISOWeekday(date)])
		for _, block := range ix.BlocksOn(date) {
			slots = subtract(slots, block.StartTime, block.EndTime)
		}
		if slots == nil {
			slots = []Slot{}
		}
		days = append(days, DaySlots{Date: date, Slots: slots})
	}

	uc.logger.Info("ListFreeSlots: space=%d, period=[%s, %s], %d days resolved",
		space.ID, d.Start.Format(domain.DateFormat), d.End.Format(domain.DateFormat), len(days))

	return &Response{
		SpaceID: space.ID,
		Start:   d.Start,
		End:     d.End,
		Days:    days,
	}, nil
}
