package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
	"github.com/ufjf-cead/StudioBookingService/internal/integrations/notifyservice"
	"github.com/ufjf-cead/StudioBookingService/internal/integrations/termservice"
	"github.com/ufjf-cead/StudioBookingService/internal/signature"
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
	activeCount int
	createErr   error

	created *domain.Booking
}

func (m *mockBookingRepo) GetActiveBlocksBetween(_ context.Context, spaceID *int64, _, _ time.Time) ([]*domain.TimeBlock, error) {
	if spaceID != nil {
		return m.spaceBlocks, nil
	}
	return m.allBlocks, nil
}

func (m *mockBookingRepo) CountActiveWithFutureBlocks(_ context.Context, _ int64, _ time.Time) (int, error) {
	return m.activeCount, nil
}

func (m *mockBookingRepo) CreateWithBlocks(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *booking
	created.ID = 100
	created.CreatedAt = time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC)
	for i := range created.Blocks {
		created.Blocks[i].ID = int64(200 + i)
		created.Blocks[i].BookingID = created.ID
	}
	m.created = &created
	return &created, nil
}

type mockTermClient struct {
	term *termservice.Term
	err  error
}

func (m *mockTermClient) GetTerm(_ context.Context, _ int64) (*termservice.Term, error) {
	return m.term, m.err
}

type mockNotifyClient struct {
	sent []*notifyservice.BookingConfirmation
	err  error
}

func (m *mockNotifyClient) SendBookingConfirmation(_ context.Context, c *notifyservice.BookingConfirmation) error {
	m.sent = append(m.sent, c)
	return m.err
}

type mockTxManager struct {
	calls     int
	commitErr error
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	if m.commitErr != nil {
		return fmt.Errorf("txmanager: failed to commit transaction: %w", m.commitErr)
	}
	return nil
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

func proposal(d time.Time, start, end string) domain.BlockProposal {
	return domain.BlockProposal{Date: d, StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
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

type fixture struct {
	spaces   *mockSpaceRepo
	schedule *mockScheduleRepo
	limits   *mockLimitsRepo
	bookings *mockBookingRepo
	terms    *mockTermClient
	notify   *mockNotifyClient
	tx       *mockTxManager
	signer   *draft.Signer
	now      time.Time
}

func newFixture() *fixture {
	return &fixture{
		spaces: &mockSpaceRepo{space: &domain.Space{
			ID: 1, Name: "Студия А", Active: true,
		}},
		schedule: &mockScheduleRepo{windows: allWeekdays()},
		limits:   &mockLimitsRepo{limits: defaultLimits()},
		bookings: &mockBookingRepo{},
		terms:    &mockTermClient{term: &termservice.Term{ID: 5, Text: "Условия использования студии"}},
		notify:   &mockNotifyClient{},
		tx:       &mockTxManager{},
		signer:   draft.NewSigner("test-secret", time.Hour),
		now:      time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.spaces, f.schedule, f.limits, f.bookings, f.signer, f.terms, f.notify, f.tx, &nopLogger{})
	uc.timeProvider = &fixedTime{now: f.now}
	return uc
}

func (f *fixture) token(start, end time.Time) string {
	return f.signer.Sign(1, start, end, f.now)
}

func (f *fixture) request(blocks ...domain.BlockProposal) *Request {
	return &Request{
		RequesterID: 7,
		DraftToken:  f.token(date(2026, 4, 6), date(2026, 4, 8)),
		TermID:      5,
		Note:        "Запись лекций по математике",
		Blocks:      blocks,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), f.request(
		proposal(date(2026, 4, 6), "09:00", "11:00"),
		proposal(date(2026, 4, 7), "14:00", "16:00"),
	))
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.BookingID)
	assert.Equal(t, int64(1), resp.SpaceID)
	require.Len(t, resp.Blocks, 2)
	assert.Equal(t, 1, f.tx.calls)

	// подпись детерминирована и воспроизводима по сохранённым данным
	expected := signature.Generate(signature.Input{
		BookingID:   100,
		RequesterID: 7,
		TermText:    "Условия использования студии",
		SpaceName:   "Студия А",
		Note:        "Запись лекций по математике",
		Blocks:      resp.Blocks,
	})
	assert.Equal(t, expected, resp.Signature)

	// подтверждение ушло в сервис уведомлений с той же подписью
	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, resp.Signature, f.notify.sent[0].Signature)
	assert.Equal(t, int64(100), f.notify.sent[0].BookingID)
}

func TestExecute_NotifyFailureDoesNotFailCommit(t *testing.T) {
	f := newFixture()
	f.notify.err = errors.New("notify service unavailable")
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), f.request(
		proposal(date(2026, 4, 6), "09:00", "11:00"),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.BookingID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	t.Run("blank note", func(t *testing.T) {
		req := f.request(proposal(date(2026, 4, 6), "09:00", "11:00"))
		req.Note = "   "
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no blocks", func(t *testing.T) {
		req := f.request()
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted block time", func(t *testing.T) {
		req := f.request(proposal(date(2026, 4, 6), "11:00", "09:00"))
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing term", func(t *testing.T) {
		req := f.request(proposal(date(2026, 4, 6), "09:00", "11:00"))
		req.TermID = 0
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("overlapping blocks within request", func(t *testing.T) {
		// блоки одной заявки пересекаются между собой: существующих броней нет,
		// поэтому только взаимная проверка не даёт записать пересечение
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "10:00", "11:00"),
			proposal(date(2026, 4, 6), "10:30", "11:30"),
		))
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, f.bookings.created)
	})

	t.Run("same times on different dates allowed", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "10:00", "11:00"),
			proposal(date(2026, 4, 7), "10:00", "11:00"),
		))
		assert.NoError(t, err)
	})

	t.Run("touching blocks same date allowed", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "10:00", "11:00"),
			proposal(date(2026, 4, 6), "11:00", "12:00"),
		))
		assert.NoError(t, err)
	})
}

func TestExecute_DraftErrors(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	t.Run("tampered token", func(t *testing.T) {
		req := f.request(proposal(date(2026, 4, 6), "09:00", "11:00"))
		req.DraftToken = "forged.token"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDraft)
	})

	t.Run("expired token", func(t *testing.T) {
		req := f.request(proposal(date(2026, 4, 6), "09:00", "11:00"))
		req.DraftToken = f.signer.Sign(1, date(2026, 4, 6), date(2026, 4, 8), f.now.Add(-2*time.Hour))
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrExpiredDraft)
	})

	t.Run("block outside approved period", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 9), "09:00", "11:00"),
		))
		assert.ErrorIs(t, err, ErrBlockOutsideWindow)
		assert.Nil(t, f.bookings.created)
	})
}

func TestExecute_ScheduleViolations(t *testing.T) {
	t.Run("interval outside team windows", func(t *testing.T) {
		f := newFixture()
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "07:00", "09:00"), // окна с 08:00
		))
		assert.ErrorIs(t, err, ErrBlockOutsideWindow)
	})

	t.Run("interval spanning two windows", func(t *testing.T) {
		f := newFixture()
		// утреннее и вечернее окна, интервал накрывает разрыв между ними
		f.schedule.windows = []*domain.TeamWindow{
			{Weekday: 1, StartTime: types.TimeString("08:00"), EndTime: types.TimeString("12:00")},
			{Weekday: 1, StartTime: types.TimeString("14:00"), EndTime: types.TimeString("18:00")},
		}
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "10:00", "15:00"),
		))
		assert.ErrorIs(t, err, ErrBlockOutsideWindow)
	})

	t.Run("blackout date", func(t *testing.T) {
		f := newFixture()
		f.schedule.blackouts = []*domain.Blackout{{ID: 1, Date: date(2026, 4, 7)}}
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 7), "09:00", "11:00"),
		))
		assert.ErrorIs(t, err, ErrBlockOutsideWindow)
	})
}

func TestExecute_Conflicts(t *testing.T) {
	t.Run("overlapping block same date", func(t *testing.T) {
		f := newFixture()
		f.bookings.spaceBlocks = []*domain.TimeBlock{
			{Date: date(2026, 4, 6), StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		}
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "11:00", "13:00"),
		))
		assert.ErrorIs(t, err, ErrBlockConflict)
		assert.Nil(t, f.bookings.created)
	})

	t.Run("date inside buffer zone", func(t *testing.T) {
		f := newFixture()
		f.spaces.space.BufferBeforeDays = 1
		// блок 7 апреля с буфером закрывает и 6 апреля, пересечения по времени нет
		f.bookings.spaceBlocks = []*domain.TimeBlock{
			{Date: date(2026, 4, 7), StartTime: types.TimeString("14:00"), EndTime: types.TimeString("16:00")},
		}
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "11:00"),
		))
		assert.ErrorIs(t, err, ErrBlockConflict)
	})
}

func TestExecute_QuotaRevalidation(t *testing.T) {
	t.Run("month quota counts proposed blocks", func(t *testing.T) {
		f := newFixture()
		f.limits.limits.MaxPerMonth = 2
		// один уже закоммиченный блок в апреле: два новых превышают квоту
		f.bookings.allBlocks = []*domain.TimeBlock{
			{Date: date(2026, 4, 20), StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		}
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "10:00"),
			proposal(date(2026, 4, 7), "09:00", "10:00"),
		))
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Nil(t, f.bookings.created)
	})

	t.Run("one proposed block still fits", func(t *testing.T) {
		f := newFixture()
		f.limits.limits.MaxPerMonth = 2
		f.bookings.allBlocks = []*domain.TimeBlock{
			{Date: date(2026, 4, 20), StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		}
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "10:00"),
		))
		assert.NoError(t, err)
	})

	t.Run("max days per week within booking", func(t *testing.T) {
		f := newFixture()
		f.limits.limits.MaxDaysPerWeek = 2
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "10:00"),
			proposal(date(2026, 4, 7), "09:00", "10:00"),
			proposal(date(2026, 4, 8), "09:00", "10:00"),
		))
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("two blocks on same date count as one day", func(t *testing.T) {
		f := newFixture()
		f.limits.limits.MaxDaysPerWeek = 1
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "10:00"),
			proposal(date(2026, 4, 6), "11:00", "12:00"),
		))
		assert.NoError(t, err)
	})

	t.Run("max active bookings per requester", func(t *testing.T) {
		f := newFixture()
		f.bookings.activeCount = 3
		uc := f.useCase()
		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "10:00"),
		))
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Nil(t, f.bookings.created)
	})
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	// проигравший гонку сериализуемых транзакций получает 40001 от postgres;
	// для клиента это конфликт с повторной попыткой, а не внутренняя ошибка

	t.Run("on commit", func(t *testing.T) {
		f := newFixture()
		f.tx.commitErr = &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
		uc := f.useCase()

		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "11:00"),
		))
		assert.ErrorIs(t, err, ErrBlockConflict)
	})

	t.Run("on insert", func(t *testing.T) {
		f := newFixture()
		f.bookings.createErr = &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"}
		uc := f.useCase()

		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "11:00"),
		))
		assert.ErrorIs(t, err, ErrBlockConflict)
	})

	t.Run("other db error stays internal", func(t *testing.T) {
		f := newFixture()
		f.bookings.createErr = &pq.Error{Code: "23505", Message: "duplicate key value"}
		uc := f.useCase()

		_, err := uc.Execute(context.Background(), f.request(
			proposal(date(2026, 4, 6), "09:00", "11:00"),
		))
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_IntervalAcrossMergedWindows(t *testing.T) {
	// смежные окна образуют непрерывную доступность: интервал через их стык
	// показывается свободным слотом и должен фиксироваться
	f := newFixture()
	f.schedule.windows = []*domain.TeamWindow{
		{Weekday: 1, StartTime: types.TimeString("08:00"), EndTime: types.TimeString("12:00")},
		{Weekday: 1, StartTime: types.TimeString("12:00"), EndTime: types.TimeString("16:00")},
	}
	uc := f.useCase()

	resp, err := uc.Execute(context.Background(), f.request(
		proposal(date(2026, 4, 6), "10:00", "14:00"),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.BookingID)
}

func TestExecute_TermNotFound(t *testing.T) {
	f := newFixture()
	f.terms.term = nil
	f.terms.err = termservice.ErrTermNotFound
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), f.request(
		proposal(date(2026, 4, 6), "09:00", "11:00"),
	))
	assert.ErrorIs(t, err, ErrTermNotFound)
}
