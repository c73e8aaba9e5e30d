package domain

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

// TeamWindow повторяющееся недельное окно доступности съёмочной команды
// На один день недели может быть несколько окон
type TeamWindow struct {
	ID        int64
	Weekday   int // ISO: 1 = понедельник, ..., 7 = воскресенье
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Contains возвращает true, если интервал [start, end] целиком лежит внутри окна
func (w *TeamWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// Blackout конкретная календарная дата, когда команда недоступна для всех пространств
type Blackout struct {
	ID   int64
	Date time.Time
}

// BookingLimits глобальная политика квот бронирования - единственная запись,
// редактируемая администраторами. Движок загружает её в начале каждой операции
// и дальше работает с неизменяемой копией
type BookingLimits struct {
	MaxPerMonth           int  // максимум блоков в (год, месяц)
	MaxPerWeek            int  // максимум блоков в (год, ISO-неделя)
	MaxDaysPerWeek        int  // максимум различных дат одного бронирования в ISO-неделе
	MaxActivePerRequester int  // максимум активных бронирований с будущими блоками на человека
	LeadTimeDays          int  // минимальная антецеденция от сегодня
	OpenHorizonDays       int  // открытый горизонт агенды от сегодня
	AllowCrossWeekEvents  bool // может ли одно бронирование пересекать границу ISO-недели
}
