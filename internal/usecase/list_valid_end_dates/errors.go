package list_valid_end_dates

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено или неактивно
	ErrSpaceNotFound = errors.New("list_valid_end_dates: space not found")

	// ErrTeamNotConfigured возвращается, когда у команды нет ни одного окна доступности
	ErrTeamNotConfigured = errors.New("list_valid_end_dates: team availability not configured")

	// ErrLimitsNotConfigured возвращается, когда запись лимитов отсутствует
	ErrLimitsNotConfigured = errors.New("list_valid_end_dates: booking limits not configured")

	// ErrInvalidStartDate возвращается, когда дата начала вне разрешённого окна
	ErrInvalidStartDate = errors.New("list_valid_end_dates: start date outside allowed window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_valid_end_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_valid_end_dates: internal error")
)
