package domain

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

// Booking заявка на бронирование студии. Создается только коммиттером, одной
// транзакцией вместе со своими блоками; никогда не редактируется - исправление
// это отклонение плюс новое бронирование
type Booking struct {
	ID          int64
	RequesterID int64
	SpaceID     int64
	TermID      int64
	Note        string
	Blocks      []TimeBlock

	// Маркер отклонения: наличие убирает бронирование из всей математики
	// занятости и квот, но сохраняет историю
	RejectedAt   *time.Time
	RejectedNote *string

	CreatedAt time.Time
}

// IsActive возвращает true, если бронирование не отклонено
func (b *Booking) IsActive() bool {
	return b.RejectedAt == nil
}

// HasFutureBlock возвращает true, если хотя бы один блок датирован сегодня или позже
func (b *Booking) HasFutureBlock(today time.Time) bool {
	day := TruncateToDate(today)
	for i := range b.Blocks {
		if !b.Blocks[i].Date.Before(day) {
			return true
		}
	}
	return false
}

// TimeBlock один непрерывный интервал времени на одну дату внутри бронирования
type TimeBlock struct {
	ID        int64
	BookingID int64
	Date      time.Time // календарная дата блока, без времени
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps возвращает true, если интервалы времени двух блоков реально пересекаются
// Граничные случаи (конец одного равен началу другого) пересечением не считаются
func (t *TimeBlock) Overlaps(start, end types.TimeString) bool {
	return t.StartTime.IsBefore(end) && t.EndTime.IsAfter(start)
}

// BlockProposal предлагаемый блок (дата, начало, конец) до коммита
type BlockProposal struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}
