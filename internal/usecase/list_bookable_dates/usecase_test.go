package list_bookable_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	limitsRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/limits"
	spaceRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/space"
	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

type mockSpaceRepo struct {
	space *domain.Space
	err   error
}

func (m *mockSpaceRepo) GetActiveByID(_ context.Context, _ int64) (*domain.Space, error) {
	return m.space, m.err
}

type mockScheduleRepo struct {
	windows   []*domain.TeamWindow
	blackouts []*domain.Blackout
}

func (m *mockScheduleRepo) ListWindows(_ context.Context) ([]*domain.TeamWindow, error) {
	return m.windows, nil
}

func (m *mockScheduleRepo) ListBlackoutsBetween(_ context.Context, _, _ time.Time) ([]*domain.Blackout, error) {
	return m.blackouts, nil
}

type mockLimitsRepo struct {
	limits *domain.BookingLimits
	err    error
}

func (m *mockLimitsRepo) Get(_ context.Context) (*domain.BookingLimits, error) {
	return m.limits, m.err
}

type blocksCall struct {
	spaceID *int64
	from    time.Time
	to      time.Time
}

type mockBookingRepo struct {
	spaceBlocks []*domain.TimeBlock // ответ на запрос с фильтром по пространству
	allBlocks   []*domain.TimeBlock // ответ на глобальный запрос (spaceID == nil)
	calls       []blocksCall
}

func (m *mockBookingRepo) GetActiveBlocksBetween(_ context.Context, spaceID *int64, from, to time.Time) ([]*domain.TimeBlock, error) {
	m.calls = append(m.calls, blocksCall{spaceID: spaceID, from: from, to: to})
	if spaceID != nil {
		return m.spaceBlocks, nil
	}
	return m.allBlocks, nil
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (l *nopLogger) Info(_ string, _ ...interface{})  {}
func (l *nopLogger) Warn(_ string, _ ...interface{})  {}
func (l *nopLogger) Error(_ string, _ ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func block(d time.Time) *domain.TimeBlock {
	return &domain.TimeBlock{Date: d, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")}
}

func windowOn(weekday int) *domain.TeamWindow {
	return &domain.TeamWindow{Weekday: weekday, StartTime: types.TimeString("08:00"), EndTime: types.TimeString("18:00")}
}

func allWeekdays() []*domain.TeamWindow {
	windows := make([]*domain.TeamWindow, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		windows = append(windows, windowOn(wd))
	}
	return windows
}

func defaultLimits() *domain.BookingLimits {
	return &domain.BookingLimits{
		MaxPerMonth:           30,
		MaxPerWeek:            10,
		MaxDaysPerWeek:        5,
		MaxActivePerRequester: 3,
		LeadTimeDays:          1,
		OpenHorizonDays:       10,
		AllowCrossWeekEvents:  true,
	}
}

func newTestUseCase(
	spaces *mockSpaceRepo,
	schedule *mockScheduleRepo,
	limits *mockLimitsRepo,
	bookings *mockBookingRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(spaces, schedule, limits, bookings, &nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_WeekdayFilter(t *testing.T) {
	// 2026-04-01 - среда; окно кандидатов [2026-04-02, 2026-04-11]
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	spaces := &mockSpaceRepo{space: &domain.Space{ID: 1, Name: "Студия А", Active: true}}
	schedule := &mockScheduleRepo{windows: []*domain.TeamWindow{windowOn(1), windowOn(3), windowOn(5)}}
	uc := newTestUseCase(spaces, schedule, &mockLimitsRepo{limits: defaultLimits()}, &mockBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
	require.NoError(t, err)

	assert.Equal(t, date(2026, 4, 2), resp.From)
	assert.Equal(t, date(2026, 4, 11), resp.To)
	// пятницы, понедельник и среда внутри окна
	assert.Equal(t, []time.Time{
		date(2026, 4, 3),
		date(2026, 4, 6),
		date(2026, 4, 8),
		date(2026, 4, 10),
	}, resp.Dates)
}

func TestExecute_BlackoutExcluded(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	spaces := &mockSpaceRepo{space: &domain.Space{ID: 1, Active: true}}
	schedule := &mockScheduleRepo{
		windows:   []*domain.TeamWindow{windowOn(1), windowOn(5)},
		blackouts: []*domain.Blackout{{ID: 1, Date: date(2026, 4, 6)}},
	}
	uc := newTestUseCase(spaces, schedule, &mockLimitsRepo{limits: defaultLimits()}, &mockBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
	require.NoError(t, err)

	// понедельник 6 апреля выпал из-за blackout, остались пятницы
	assert.Equal(t, []time.Time{date(2026, 4, 3), date(2026, 4, 10)}, resp.Dates)
}

func TestExecute_BufferBlocksDates(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	spaces := &mockSpaceRepo{space: &domain.Space{
		ID: 1, Active: true, BufferBeforeDays: 1, BufferAfterDays: 1,
	}}
	schedule := &mockScheduleRepo{windows: allWeekdays()}
	// блок 9 апреля с буферами 1/1 закрывает даты 8..10
	bookings := &mockBookingRepo{spaceBlocks: []*domain.TimeBlock{block(date(2026, 4, 9))}}
	uc := newTestUseCase(spaces, schedule, &mockLimitsRepo{limits: defaultLimits()}, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
	require.NoError(t, err)

	got := make(map[string]bool, len(resp.Dates))
	for _, d := range resp.Dates {
		got[domain.DateKey(d)] = true
	}
	assert.True(t, got["2026-04-07"])
	assert.False(t, got["2026-04-08"])
	assert.False(t, got["2026-04-09"])
	assert.False(t, got["2026-04-10"])
	assert.True(t, got["2026-04-11"])
}

func TestExecute_MonthQuotaExhausted(t *testing.T) {
	// окно кандидатов пересекает границу месяцев: [2026-04-26, 2026-05-05]
	now := time.Date(2026, 4, 25, 10, 0, 0, 0, time.UTC)
	spaces := &mockSpaceRepo{space: &domain.Space{ID: 2, Active: true}}
	schedule := &mockScheduleRepo{windows: allWeekdays()}
	limits := defaultLimits()
	limits.MaxPerMonth = 2
	// два закоммиченных блока в апреле на другом пространстве исчерпывают квоту месяца
	bookings := &mockBookingRepo{allBlocks: []*domain.TimeBlock{
		block(date(2026, 4, 13)),
		block(date(2026, 4, 14)),
	}}
	uc := newTestUseCase(spaces, schedule, &mockLimitsRepo{limits: limits}, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 2})
	require.NoError(t, err)

	for _, d := range resp.Dates {
		assert.Equal(t, time.May, d.Month(), "april dates must be excluded: %s", domain.DateKey(d))
	}
	assert.Len(t, resp.Dates, 5) // 1..5 мая
}

func TestExecute_FetchRanges(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	spaces := &mockSpaceRepo{space: &domain.Space{
		ID: 1, Active: true, BufferBeforeDays: 2, BufferAfterDays: 3,
	}}
	bookings := &mockBookingRepo{}
	uc := newTestUseCase(spaces, &mockScheduleRepo{windows: allWeekdays()},
		&mockLimitsRepo{limits: defaultLimits()}, bookings, now)

	_, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
	require.NoError(t, err)

	require.Len(t, bookings.calls, 2)

	// первый запрос: блоки пространства с расширением на буферы
	require.NotNil(t, bookings.calls[0].spaceID)
	assert.Equal(t, int64(1), *bookings.calls[0].spaceID)
	assert.Equal(t, date(2026, 3, 30), bookings.calls[0].from) // from - bufferAfter
	assert.Equal(t, date(2026, 4, 13), bookings.calls[0].to)   // to + bufferBefore

	// второй запрос: глобальные блоки по полным корзинам квот
	assert.Nil(t, bookings.calls[1].spaceID)
	assert.Equal(t, date(2026, 3, 30), bookings.calls[1].from) // понедельник ISO-недели
	assert.Equal(t, date(2026, 4, 30), bookings.calls[1].to)   // конец месяца
}

func TestExecute_Errors(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run("invalid input", func(t *testing.T) {
		uc := newTestUseCase(&mockSpaceRepo{}, &mockScheduleRepo{}, &mockLimitsRepo{}, &mockBookingRepo{}, now)
		_, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("space not found", func(t *testing.T) {
		uc := newTestUseCase(&mockSpaceRepo{err: spaceRepo.ErrSpaceNotFound}, &mockScheduleRepo{},
			&mockLimitsRepo{}, &mockBookingRepo{}, now)
		_, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
		assert.ErrorIs(t, err, ErrSpaceNotFound)
	})

	t.Run("limits not configured", func(t *testing.T) {
		uc := newTestUseCase(&mockSpaceRepo{space: &domain.Space{ID: 1, Active: true}},
			&mockScheduleRepo{}, &mockLimitsRepo{err: limitsRepo.ErrLimitsNotFound}, &mockBookingRepo{}, now)
		_, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
		assert.ErrorIs(t, err, ErrLimitsNotConfigured)
	})

	t.Run("no team windows", func(t *testing.T) {
		uc := newTestUseCase(&mockSpaceRepo{space: &domain.Space{ID: 1, Active: true}},
			&mockScheduleRepo{}, &mockLimitsRepo{limits: defaultLimits()}, &mockBookingRepo{}, now)
		_, err := uc.Execute(context.Background(), &Request{RequesterID: 7, SpaceID: 1})
		assert.ErrorIs(t, err, ErrTeamNotConfigured)
	})
}
