package domain

import "time"

// WeekKey ключ корзины квоты по ISO-неделе
type WeekKey struct {
	Year int
	Week int
}

// MonthKey ключ корзины квоты по месяцу
type MonthKey struct {
	Year  int
	Month time.Month
}

// WeekKeyOf возвращает (ISO-год, ISO-неделя) даты
func WeekKeyOf(date time.Time) WeekKey {
	year, week := date.ISOWeek()
	return WeekKey{Year: year, Week: week}
}

// MonthKeyOf возвращает (год, месяц) даты
func MonthKeyOf(date time.Time) MonthKey {
	return MonthKey{Year: date.Year(), Month: date.Month()}
}

// ISOWeekday возвращает день недели в ISO нумерации: 1 = понедельник, 7 = воскресенье
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// TruncateToDate обнуляет часы, минуты и секунды, оставляя только дату
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey возвращает дату как строку "YYYY-MM-DD" - ключ для множеств дат
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDate возвращает true, если обе метки времени приходятся на одну дату
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DatesInRange возвращает все даты интервала [from, to] включительно
func DatesInRange(from, to time.Time) []time.Time {
	from = TruncateToDate(from)
	to = TruncateToDate(to)

	dates := make([]time.Time, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// MonthsInRange возвращает все (год, месяц), затронутые интервалом [from, to]
func MonthsInRange(from, to time.Time) []MonthKey {
	seen := make(map[MonthKey]bool)
	months := make([]MonthKey, 0)

	for _, d := range DatesInRange(from, to) {
		key := MonthKeyOf(d)
		if !seen[key] {
			seen[key] = true
			months = append(months, key)
		}
	}
	return months
}

// WeeksInRange возвращает все (ISO-год, ISO-неделя), затронутые интервалом [from, to]
func WeeksInRange(from, to time.Time) []WeekKey {
	seen := make(map[WeekKey]bool)
	weeks := make([]WeekKey, 0)

	for _, d := range DatesInRange(from, to) {
		key := WeekKeyOf(d)
		if !seen[key] {
			seen[key] = true
			weeks = append(weeks, key)
		}
	}
	return weeks
}

// DaysPerWeek возвращает количество дат интервала [from, to] в каждой ISO-неделе
func DaysPerWeek(from, to time.Time) map[WeekKey]int {
	counts := make(map[WeekKey]int)
	for _, d := range DatesInRange(from, to) {
		counts[WeekKeyOf(d)]++
	}
	return counts
}
