package domain

// Space физическое пространство для записи/трансляции (студия)
// Ведётся административной поверхностью; движок бронирования читает его как есть
type Space struct {
	ID               int64
	Name             string
	Note             *string
	BufferBeforeDays int // дни логистики перед трансляцией, пространство занято
	BufferAfterDays  int // дни логистики после трансляции
	Active           bool
}
