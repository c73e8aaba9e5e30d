package select_period

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
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
}

func (m *mockLimitsRepo) Get(_ context.Context) (*domain.BookingLimits, error) {
	return m.limits, nil
}

type mockBookingRepo struct {
	spaceBlocks []*domain.TimeBlock
	allBlocks   []*domain.TimeBlock
}

func (m *mockBookingRepo) GetActiveBlocksBetween(_ context.Context, spaceID *int64, _, _ time.Time) ([]*domain.TimeBlock, error) {
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

func allWeekdays() []*domain.TeamWindow {
	windows := make([]*domain.TeamWindow, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		windows = append(windows, &domain.TeamWindow{
			Weekday:   wd,
			StartTime: types.TimeString("08:00"),
			EndTime:   types.TimeString("18:00"),
		})
	}
	return windows
}

func defaultLimits() *domain.BookingLimits {
	return &domain.BookingLimits{
		MaxPerMonth:           30,
		MaxPerWeek:            10,
		MaxDaysPerWeek:        7,
		MaxActivePerRequester: 3,
		LeadTimeDays:          1,
		OpenHorizonDays:       14,
		AllowCrossWeekEvents:  true,
	}
}

func newTestUseCase(limits *domain.BookingLimits, schedule *mockScheduleRepo, bookings *mockBookingRepo, signer *draft.Signer, now time.Time) *UseCase {
	spaces := &mockSpaceRepo{space: &domain.Space{ID: 3, Name: "Студия Б", Active: true}}
	uc := NewUseCase(spaces, schedule, &mockLimitsRepo{limits: limits}, bookings, signer, &nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecute_ApprovedPeriodIssuesToken(t *testing.T) {
	now := time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)
	signer := draft.NewSigner("test-secret", time.Hour)
	uc := newTestUseCase(defaultLimits(), &mockScheduleRepo{windows: allWeekdays()}, &mockBookingRepo{}, signer, now)

	resp, err := uc.Execute(context.Background(), &Request{
		RequesterID: 7,
		SpaceID:     3,
		Start:       date(2026, 4, 6),
		End:         date(2026, 4, 8),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.DraftToken)

	// токен проверяем тем же подписчиком: содержит одобренный период
	d, err := signer.Verify(resp.DraftToken, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.SpaceID)
	assert.True(t, d.Start.Equal(date(2026, 4, 6)))
	assert.True(t, d.End.Equal(date(2026, 4, 8)))
}

func TestExecute_PeriodNotAvailable(t *testing.T) {
	now := time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)
	signer := draft.NewSigner("test-secret", time.Hour)

	t.Run("outside window", func(t *testing.T) {
		uc := newTestUseCase(defaultLimits(), &mockScheduleRepo{windows: allWeekdays()}, &mockBookingRepo{}, signer, now)
		_, err := uc.Execute(context.Background(), &Request{
			RequesterID: 7, SpaceID: 3,
			Start: date(2026, 4, 6), End: date(2026, 4, 25), // за горизонтом
		})
		assert.ErrorIs(t, err, ErrPeriodNotAvailable)
	})

	t.Run("blocked date inside period", func(t *testing.T) {
		bookings := &mockBookingRepo{spaceBlocks: []*domain.TimeBlock{
			{Date: date(2026, 4, 7), StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		}}
		uc := newTestUseCase(defaultLimits(), &mockScheduleRepo{windows: allWeekdays()}, bookings, signer, now)
		_, err := uc.Execute(context.Background(), &Request{
			RequesterID: 7, SpaceID: 3,
			Start: date(2026, 4, 6), End: date(2026, 4, 8),
		})
		assert.ErrorIs(t, err, ErrPeriodNotAvailable)
	})

	t.Run("blackout inside period", func(t *testing.T) {
		schedule := &mockScheduleRepo{
			windows:   allWeekdays(),
			blackouts: []*domain.Blackout{{ID: 1, Date: date(2026, 4, 8)}},
		}
		uc := newTestUseCase(defaultLimits(), schedule, &mockBookingRepo{}, signer, now)
		_, err := uc.Execute(context.Background(), &Request{
			RequesterID: 7, SpaceID: 3,
			Start: date(2026, 4, 6), End: date(2026, 4, 8),
		})
		assert.ErrorIs(t, err, ErrPeriodNotAvailable)
	})

	t.Run("cross week forbidden", func(t *testing.T) {
		limits := defaultLimits()
		limits.AllowCrossWeekEvents = false
		uc := newTestUseCase(limits, &mockScheduleRepo{windows: allWeekdays()}, &mockBookingRepo{}, signer, now)
		_, err := uc.Execute(context.Background(), &Request{
			RequesterID: 7, SpaceID: 3,
			Start: date(2026, 4, 10), End: date(2026, 4, 13), // пятница..понедельник
		})
		assert.ErrorIs(t, err, ErrPeriodNotAvailable)
	})

	t.Run("month quota reached", func(t *testing.T) {
		limits := defaultLimits()
		limits.MaxPerMonth = 1
		bookings := &mockBookingRepo{allBlocks: []*domain.TimeBlock{
			{Date: date(2026, 4, 20), StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		}}
		uc := newTestUseCase(limits, &mockScheduleRepo{windows: allWeekdays()}, bookings, signer, now)
		_, err := uc.Execute(context.Background(), &Request{
			RequesterID: 7, SpaceID: 3,
			Start: date(2026, 4, 6), End: date(2026, 4, 7),
		})
		assert.ErrorIs(t, err, ErrPeriodNotAvailable)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)
	signer := draft.NewSigner("test-secret", time.Hour)
	uc := newTestUseCase(defaultLimits(), &mockScheduleRepo{windows: allWeekdays()}, &mockBookingRepo{}, signer, now)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID: 7, SpaceID: 3,
		Start: date(2026, 4, 8), End: date(2026, 4, 6),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
