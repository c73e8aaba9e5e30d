package termservice

// Term терм согласия (условия использования студии) из внешнего сервиса
// Версионирование и редактирование текста - зона ответственности этого сервиса,
// движку бронирования нужны только id и точный текст для подписи
type Term struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
