package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
	limitsRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/limits"
	spaceRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/space"
	"github.com/ufjf-cead/StudioBookingService/internal/integrations/notifyservice"
	termClient "github.com/ufjf-cead/StudioBookingService/internal/integrations/termservice"
	"github.com/ufjf-cead/StudioBookingService/internal/occupancy"
	"github.com/ufjf-cead/StudioBookingService/internal/signature"
	"github.com/ufjf-cead/StudioBookingService/pkg/ptr"
	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

// UseCase use case для атомарной фиксации бронирования
type UseCase struct {
	spaceRepo     SpaceRepository
	scheduleRepo  ScheduleRepository
	limitsRepo    LimitsRepository
	bookingRepo   BookingRepository
	draftVerifier DraftVerifier
	termClient    TermServiceClient
	notifyClient  NotifyServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	scheduleRepo ScheduleRepository,
	limitsRepo LimitsRepository,
	bookingRepo BookingRepository,
	draftVerifier DraftVerifier,
	termClient TermServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:     spaceRepo,
		scheduleRepo:  scheduleRepo,
		limitsRepo:    limitsRepo,
		bookingRepo:   bookingRepo,
		draftVerifier: draftVerifier,
		termClient:    termClient,
		notifyClient:  notifyClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case фиксации бронирования
// Все проверки выполняются против свежих данных в сериализуемой транзакции,
// а не против снимка, использованного на предыдущих шагах потока
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: requester=%d, blocks=%d", req.RequesterID, len(req.Blocks))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := domain.TruncateToDate(now)

	// 3. Проверяем черновой токен периода
	d, err := uc.draftVerifier.Verify(req.DraftToken, now)
	if err != nil {
		if errors.Is(err, draft.ErrExpiredToken) {
			uc.logger.Warn("CommitBooking: draft token expired")
			return nil, ErrExpiredDraft
		}
		uc.logger.Warn("CommitBooking: invalid draft token: %v", err)
		return nil, ErrInvalidDraft
	}

	// 4. Каждый блок должен лежать внутри одобренного периода
	for _, b := range req.Blocks {
		blockDate := domain.TruncateToDate(b.Date)
		if blockDate.Before(d.Start) || blockDate.After(d.End) {
			uc.logger.Warn("CommitBooking: block date %s outside approved period [%s, %s]",
				blockDate.Format(domain.DateFormat), d.Start.Format(domain.DateFormat), d.End.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: block %s outside approved period",
				ErrBlockOutsideWindow, blockDate.Format(domain.DateFormat))
		}
	}

	// 5. Получаем пространство
	space, err := uc.spaceRepo.GetActiveByID(ctx, d.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("CommitBooking: space id=%d not found", d.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CommitBooking: failed to get space id=%d: %v", d.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	// 6. Получаем принятый терм согласия (точный текст входит в подпись)
	term, err := uc.termClient.GetTerm(ctx, req.TermID)
	if err != nil {
		if errors.Is(err, termClient.ErrTermNotFound) {
			uc.logger.Warn("CommitBooking: term id=%d not found", req.TermID)
			return nil, ErrTermNotFound
		}
		uc.logger.Error("CommitBooking: failed to get term id=%d: %v", req.TermID, err)
		return nil, fmt.Errorf("%w: failed to get term: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 7. Все проверки и запись выполняются в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Лимиты бронирования
		limits, err := uc.limitsRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, limitsRepo.ErrLimitsNotFound) {
				return ErrLimitsNotConfigured
			}
			return fmt.Errorf("%w: failed to get limits: %v", ErrInternal, err)
		}

		// 7.2. Окна доступности команды
		windows, err := uc.scheduleRepo.ListWindows(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to get team windows: %v", ErrInternal, err)
		}
		if len(windows) == 0 {
			return ErrTeamNotConfigured
		}
		windowsByWeekday := make(map[int][]*domain.TeamWindow, len(windows))
		for _, w := range windows {
			windowsByWeekday[w.Weekday] = append(windowsByWeekday[w.Weekday], w)
		}

		// 7.3. Blackout-даты периода
		blackouts, err := uc.scheduleRepo.ListBlackoutsBetween(txCtx, d.Start, d.End)
		if err != nil {
			return fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
		}
		blackoutDates := make(map[string]bool, len(blackouts))
		for _, b := range blackouts {
			blackoutDates[domain.DateKey(b.Date)] = true
		}

		// 7.4. Блоки пространства с запасом на буферы; внутри транзакции
		// строки блокируются FOR UPDATE до конца транзакции
		fetchFrom := d.Start.AddDate(0, 0, -space.BufferAfterDays)
		fetchTo := d.End.AddDate(0, 0, space.BufferBeforeDays)
		spaceBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(txCtx, ptr.Ptr(space.ID), fetchFrom, fetchTo)
		if err != nil {
			return fmt.Errorf("%w: failed to get space blocks: %v", ErrInternal, err)
		}

		// 7.5. Блоки всех пространств для пересчёта глобальных квот
		quotaFrom, quotaTo := occupancy.QuotaWindow(d.Start, d.End)
		allBlocks, err := uc.bookingRepo.GetActiveBlocksBetween(txCtx, nil, quotaFrom, quotaTo)
		if err != nil {
			return fmt.Errorf("%w: failed to get quota blocks: %v", ErrInternal, err)
		}

		ix := occupancy.Build(space, spaceBlocks, allBlocks, nil)

		// 7.6. Проверяем каждый блок против расписания и существующих броней
		for _, b := range req.Blocks {
			blockDate := domain.TruncateToDate(b.Date)
			dateStr := blockDate.Format(domain.DateFormat)

			if blackoutDates[domain.DateKey(blockDate)] {
				return fmt.Errorf("%w: team unavailable on %s", ErrBlockOutsideWindow, dateStr)
			}

			if !insideAvailability(windowsByWeekday[domain.ISOWeekday(blockDate)], b.StartTime, b.EndTime) {
				return fmt.Errorf("%w: interval %s-%s not inside team availability on %s",
					ErrBlockOutsideWindow, b.StartTime, b.EndTime, dateStr)
			}

			// Прямое пересечение по времени с блоком той же даты
			for _, existing := range ix.BlocksOn(blockDate) {
				if domain.SameDate(existing.Date, blockDate) && existing.Overlaps(b.StartTime, b.EndTime) {
					return fmt.Errorf("%w: interval %s-%s on %s", ErrBlockConflict, b.StartTime, b.EndTime, dateStr)
				}
			}

			// Дата занята другим бронированием или его буферной зоной
			if ix.IsBlocked(blockDate) {
				return fmt.Errorf("%w: date %s is already occupied", ErrBlockConflict, dateStr)
			}
		}

		// 7.7. Пересчитываем квоты с учётом вставляемых блоков
		if err := uc.checkQuotas(txCtx, ix, limits, req, today); err != nil {
			return err
		}

		// 7.8. Сохраняем бронирование и все блоки одним атомарным целым
		booking := &domain.Booking{
			RequesterID: req.RequesterID,
			SpaceID:     space.ID,
			TermID:      term.ID,
			Note:        strings.TrimSpace(req.Note),
		}
		for _, b := range req.Blocks {
			booking.Blocks = append(booking.Blocks, domain.TimeBlock{
				Date:      domain.TruncateToDate(b.Date),
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
			})
		}

		created, err := uc.bookingRepo.CreateWithBlocks(txCtx, booking)
		if err != nil {
			if isSerializationFailure(err) {
				return fmt.Errorf("%w: concurrent booking committed first", ErrBlockConflict)
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created

		return nil
	})
	if err != nil {
		// Проигравший гонку сериализуемых транзакций получает от postgres
		// ошибку 40001 на коммите: для клиента это конфликт, а не сбой -
		// повторный запрос по свежим данным имеет смысл
		if isSerializationFailure(err) {
			uc.logger.Warn("CommitBooking: serialization failure, concurrent booking won: %v", err)
			return nil, fmt.Errorf("%w: concurrent booking committed first", ErrBlockConflict)
		}
		uc.logger.Warn("CommitBooking: rejected: %v", err)
		return nil, err
	}

	// 8. Генерируем подпись зафиксированного бронирования
	sig := signature.Generate(signature.Input{
		BookingID:        result.ID,
		RequesterID:      result.RequesterID,
		TermText:         term.Text,
		SpaceName:        space.Name,
		BufferBeforeDays: space.BufferBeforeDays,
		BufferAfterDays:  space.BufferAfterDays,
		Note:             result.Note,
		Blocks:           result.Blocks,
	})

	// 9. Передаем подтверждение сервису уведомлений
	// Ошибка доставки не откатывает бронирование
	uc.sendConfirmation(ctx, result, space, sig)

	uc.logger.Info("CommitBooking: booking id=%d created for requester=%d, space=%d",
		result.ID, result.RequesterID, space.ID)

	return &Response{
		BookingID: result.ID,
		SpaceID:   space.ID,
		Signature: sig,
		CreatedAt: result.CreatedAt,
		Blocks:    result.Blocks,
	}, nil
}

// isSerializationFailure распознает ошибку postgres 40001 (serialization_failure)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}

// insideAvailability проверяет, что интервал целиком лежит внутри объединения
// окон дня. Смежные и пересекающиеся окна склеиваются, как при выдаче свободных
// слотов: показанный свободным интервал должен приниматься и здесь
func insideAvailability(windows []*domain.TeamWindow, start, end types.TimeString) bool {
	if len(windows) == 0 {
		return false
	}

	intervals := make([]*domain.TeamWindow, len(windows))
	copy(intervals, windows)
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].StartTime.IsBefore(intervals[j].StartTime)
	})

	curStart, curEnd := intervals[0].StartTime, intervals[0].EndTime
	for _, w := range intervals[1:] {
		if !w.StartTime.IsAfter(curEnd) {
			if w.EndTime.IsAfter(curEnd) {
				curEnd = w.EndTime
			}
			continue
		}
		if !start.IsBefore(curStart) && !end.IsAfter(curEnd) {
			return true
		}
		curStart, curEnd = w.StartTime, w.EndTime
	}
	return !start.IsBefore(curStart) && !end.IsAfter(curEnd)
}

// checkQuotas пересчитывает квоты по живым данным с учётом вставляемых блоков
func (uc *UseCase) checkQuotas(
	ctx context.Context,
	ix *occupancy.Index,
	limits *domain.BookingLimits,
	req *Request,
	today time.Time,
) error {
	proposedPerMonth := make(map[domain.MonthKey]int)
	proposedPerWeek := make(map[domain.WeekKey]int)
	distinctDates := make(map[string]time.Time)

	for _, b := range req.Blocks {
		blockDate := domain.TruncateToDate(b.Date)
		proposedPerMonth[domain.MonthKeyOf(blockDate)]++
		proposedPerWeek[domain.WeekKeyOf(blockDate)]++
		distinctDates[domain.DateKey(blockDate)] = blockDate
	}

	// Глобальные квоты блоков по месяцам и ISO-неделям
	for mk, qty := range proposedPerMonth {
		if ix.MonthCount(mk)+qty > limits.MaxPerMonth {
			return fmt.Errorf("%w: month quota for %d-%02d", ErrQuotaExceeded, mk.Year, mk.Month)
		}
	}
	for wk, qty := range proposedPerWeek {
		if ix.WeekCount(wk)+qty > limits.MaxPerWeek {
			return fmt.Errorf("%w: week quota for %d-W%02d", ErrQuotaExceeded, wk.Year, wk.Week)
		}
	}

	// Ограничения на само бронирование: дней в неделе и переход через неделю
	daysPerWeek := make(map[domain.WeekKey]int)
	for _, date := range distinctDates {
		daysPerWeek[domain.WeekKeyOf(date)]++
	}
	for wk, qty := range daysPerWeek {
		if qty > limits.MaxDaysPerWeek {
			return fmt.Errorf("%w: max days per week for %d-W%02d", ErrQuotaExceeded, wk.Year, wk.Week)
		}
	}
	if !limits.AllowCrossWeekEvents && len(daysPerWeek) > 1 {
		return fmt.Errorf("%w: booking crosses ISO week boundary", ErrQuotaExceeded)
	}

	// Лимит активных бронирований с будущими блоками на запрашивающего
	activeCount, err := uc.bookingRepo.CountActiveWithFutureBlocks(ctx, req.RequesterID, today)
	if err != nil {
		return fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}
	if activeCount >= limits.MaxActivePerRequester {
		return fmt.Errorf("%w: max active bookings per requester", ErrQuotaExceeded)
	}

	return nil
}

// sendConfirmation передает подписанное подтверждение внешнему сервису
func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking, space *domain.Space, sig string) {
	blocks := make([]notifyservice.ConfirmationBlock, len(booking.Blocks))
	for i, b := range booking.Blocks {
		blocks[i] = notifyservice.ConfirmationBlock{
			Date:      b.Date.Format(domain.DateFormat),
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		}
	}

	confirmation := &notifyservice.BookingConfirmation{
		BookingID:   booking.ID,
		RequesterID: booking.RequesterID,
		SpaceName:   space.Name,
		Note:        booking.Note,
		Blocks:      blocks,
		Signature:   sig,
	}

	if err := uc.notifyClient.SendBookingConfirmation(ctx, confirmation); err != nil {
		uc.logger.Warn("CommitBooking: failed to send confirmation for booking id=%d: %v", booking.ID, err)
	}
}
