package list_free_slots

import (
	"sort"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

// mergeWindows объединяет окна доступности одного дня недели в отсортированный
// список непересекающихся интервалов
func mergeWindows(windows []*domain.TeamWindow) []Slot {
	if len(windows) == 0 {
		return nil
	}

	intervals := make([]Slot, 0, len(windows))
	for _, w := range windows {
		intervals = append(intervals, Slot{Start: w.StartTime, End: w.EndTime})
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.IsBefore(intervals[j].Start)
	})

	merged := make([]Slot, 0, len(intervals))
	current := intervals[0]
	for _, iv := range intervals[1:] {
		// Смежные окна (конец одного равен началу другого) тоже склеиваем
		if !iv.Start.IsAfter(current.End) {
			if iv.End.IsAfter(current.End) {
				current.End = iv.End
			}
			continue
		}
		merged = append(merged, current)
		current = iv
	}
	merged = append(merged, current)

	return merged
}

// subtract вычитает интервал [start, end) из каждого элемента списка.
// Вычитание ассоциативно: порядок применения блоков не влияет на результат.
// Вырожденные интервалы нулевой длины отбрасываются.
func subtract(intervals []Slot, start, end types.TimeString) []Slot {
	result := make([]Slot, 0, len(intervals))
	for _, iv := range intervals {
		// Нет пересечения: касание границ пересечением не считается
		if !end.IsAfter(iv.Start) || !start.IsBefore(iv.End) {
			result = append(result, iv)
			continue
		}

		// Левый остаток до начала вычитаемого интервала
		if iv.Start.IsBefore(start) {
			result = append(result, Slot{Start: iv.Start, End: start})
		}

		// Правый остаток после конца вычитаемого интервала
		if end.IsBefore(iv.End) {
			result = append(result, Slot{Start: end, End: iv.End})
		}
	}
	return result
}
