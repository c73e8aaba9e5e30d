package list_valid_end_dates

import "time"

// Request модель запроса на получение допустимых дат окончания
type Request struct {
	RequesterID int64     // ID запрашивающего (для логирования)
	SpaceID     int64     // ID пространства
	Start       time.Time // Выбранная дата начала бронирования
}

// Response модель ответа со списком допустимых дат окончания
type Response struct {
	SpaceID int64       // ID пространства
	Start   time.Time   // Дата начала
	Dates   []time.Time // Допустимые даты окончания по возрастанию
}
