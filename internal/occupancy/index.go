package occupancy

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// Index индекс занятости пространства, построенный по активным блокам и
// датам недоступности команды. Чистая структура без побочных эффектов:
// строится из свежего чтения репозиториев и дальше только отвечает на вопросы
//
// Занятость дат и пересечения по времени считаются по блокам конкретного
// пространства (с расширением на буферные дни до/после). Счётчики квот по
// месяцам и неделям глобальные - по блокам всех пространств
type Index struct {
	space *domain.Space

	blocked map[string]bool                // дата занята (буферное расширение или blackout)
	byDate  map[string][]*domain.TimeBlock // буферно-расширенная дата -> блоки с исходным временем

	monthCounts map[domain.MonthKey]int
	weekCounts  map[domain.WeekKey]int
}

// Build строит индекс занятости
// spaceBlocks - активные блоки данного пространства (для занятости дат и пересечений)
// allBlocks - активные блоки всех пространств (для глобальных квот по месяцу/неделе)
// blackouts - даты недоступности команды
func Build(space *domain.Space, spaceBlocks, allBlocks []*domain.TimeBlock, blackouts []*domain.Blackout) *Index {
	ix := &Index{
		space:       space,
		blocked:     make(map[string]bool),
		byDate:      make(map[string][]*domain.TimeBlock),
		monthCounts: make(map[domain.MonthKey]int),
		weekCounts:  make(map[domain.WeekKey]int),
	}

	for _, block := range spaceBlocks {
		from := block.Date.AddDate(0, 0, -space.BufferBeforeDays)
		to := block.Date.AddDate(0, 0, space.BufferAfterDays)

		for _, d := range domain.DatesInRange(from, to) {
			key := domain.DateKey(d)
			ix.blocked[key] = true
			ix.byDate[key] = append(ix.byDate[key], block)
		}
	}

	for _, blackout := range blackouts {
		ix.blocked[domain.DateKey(blackout.Date)] = true
	}

	for _, block := range allBlocks {
		ix.monthCounts[domain.MonthKeyOf(block.Date)]++
		ix.weekCounts[domain.WeekKeyOf(block.Date)]++
	}

	return ix
}

// IsBlocked возвращает true, если дата занята буферно-расширенным бронированием
// или входит в даты недоступности команды
func (ix *Index) IsBlocked(date time.Time) bool {
	return ix.blocked[domain.DateKey(date)]
}

// BlocksOn возвращает блоки, чей буферно-расширенный диапазон дат покрывает date
// Каждый блок несёт своё исходное (нерасширенное) время для вычитания интервалов
func (ix *Index) BlocksOn(date time.Time) []*domain.TimeBlock {
	return ix.byDate[domain.DateKey(date)]
}

// MonthCount возвращает количество уже закоммиченных блоков в корзине (год, месяц)
func (ix *Index) MonthCount(key domain.MonthKey) int {
	return ix.monthCounts[key]
}

// WeekCount возвращает количество уже закоммиченных блоков в корзине (год, ISO-неделя)
func (ix *Index) WeekCount(key domain.WeekKey) int {
	return ix.weekCounts[key]
}
