package select_period

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено или неактивно
	ErrSpaceNotFound = errors.New("select_period: space not found")

	// ErrTeamNotConfigured возвращается, когда у команды нет ни одного окна доступности
	ErrTeamNotConfigured = errors.New("select_period: team availability not configured")

	// ErrLimitsNotConfigured возвращается, когда запись лимитов отсутствует
	ErrLimitsNotConfigured = errors.New("select_period: booking limits not configured")

	// ErrPeriodNotAvailable возвращается, когда выбранный период нарушает ограничения
	ErrPeriodNotAvailable = errors.New("select_period: period not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("select_period: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_period: internal error")
)
