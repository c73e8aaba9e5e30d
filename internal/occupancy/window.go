package occupancy

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// QuotaWindow расширяет интервал дат [from, to] так, чтобы он целиком покрывал
// каждый затронутый месяц и каждую затронутую ISO-неделю
// Квоты считаются по корзинам (год, месяц) и (год, неделя): чтобы счётчики были
// полными, блоки надо читать по всей корзине, а не только по запрошенному интервалу
func QuotaWindow(from, to time.Time) (time.Time, time.Time) {
	from = domain.TruncateToDate(from)
	to = domain.TruncateToDate(to)

	monthStart := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	weekStart := from.AddDate(0, 0, -(domain.ISOWeekday(from) - 1)) // понедельник ISO-недели

	monthEnd := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location()).
		AddDate(0, 1, -1)
	weekEnd := to.AddDate(0, 0, 7-domain.ISOWeekday(to)) // воскресенье ISO-недели

	start := monthStart
	if weekStart.Before(start) {
		start = weekStart
	}

	end := monthEnd
	if weekEnd.After(end) {
		end = weekEnd
	}

	return start, end
}
