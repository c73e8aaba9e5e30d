package domain

// Форматы дат и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNoteLength = 500

	MinBufferDays = 0
	MaxBufferDays = 30
)
