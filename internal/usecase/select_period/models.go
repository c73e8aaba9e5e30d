package select_period

import "time"

// Request модель запроса на фиксацию периода бронирования
type Request struct {
	RequesterID int64     // ID запрашивающего (для логирования)
	SpaceID     int64     // ID пространства
	Start       time.Time // Дата начала периода
	End         time.Time // Дата окончания периода (включительно)
}

// Response модель ответа с черновым токеном периода
type Response struct {
	SpaceID    int64     // ID пространства
	Start      time.Time // Дата начала
	End        time.Time // Дата окончания
	DraftToken string    // Подписанный токен, предъявляемый на следующих шагах
}
