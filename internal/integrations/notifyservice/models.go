package notifyservice

// BookingConfirmation подписанный документ подтверждения бронирования
// Список получателей и механизм доставки - зона ответственности внешнего
// сервиса уведомлений; мы только передаем документ
type BookingConfirmation struct {
	BookingID   int64               `json:"booking_id"`
	RequesterID int64               `json:"requester_id"`
	SpaceName   string              `json:"space_name"`
	Note        string              `json:"note"`
	Blocks      []ConfirmationBlock `json:"blocks"`
	Signature   string              `json:"signature"`
}

// ConfirmationBlock один блок подтверждённого бронирования
type ConfirmationBlock struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
