package list_bookable_dates

import "time"

// Request модель запроса на получение доступных для бронирования дат
type Request struct {
	RequesterID int64 // ID запрашивающего (для логирования, не влияет на результат)
	SpaceID     int64 // ID пространства
}

// Response модель ответа со списком доступных дат
type Response struct {
	SpaceID int64       // ID пространства
	From    time.Time   // Начало кандидатного окна (сегодня + антецеденция)
	To      time.Time   // Конец кандидатного окна (сегодня + горизонт агенды)
	Dates   []time.Time // Доступные даты по возрастанию
}
