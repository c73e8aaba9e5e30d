package commit_booking

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено или неактивно
	ErrSpaceNotFound = errors.New("commit_booking: space not found")

	// ErrTeamNotConfigured возвращается, когда у команды нет ни одного окна доступности
	ErrTeamNotConfigured = errors.New("commit_booking: team availability not configured")

	// ErrLimitsNotConfigured возвращается, когда запись лимитов отсутствует
	ErrLimitsNotConfigured = errors.New("commit_booking: booking limits not configured")

	// ErrInvalidDraft возвращается при повреждённом или подделанном токене периода
	ErrInvalidDraft = errors.New("commit_booking: invalid draft token")

	// ErrExpiredDraft возвращается, когда срок действия токена периода истёк
	ErrExpiredDraft = errors.New("commit_booking: draft token expired")

	// ErrTermNotFound возвращается, когда терм согласия не найден
	ErrTermNotFound = errors.New("commit_booking: acceptance term not found")

	// ErrBlockOutsideWindow возвращается, когда блок нарушает правила расписания:
	// дата вне одобренного периода либо интервал вне окон доступности команды
	ErrBlockOutsideWindow = errors.New("commit_booking: block violates schedule policy")

	// ErrQuotaExceeded возвращается, когда бронирование нарушает квоты
	ErrQuotaExceeded = errors.New("commit_booking: booking quota exceeded")

	// ErrBlockConflict возвращается при пересечении с существующим активным блоком
	ErrBlockConflict = errors.New("commit_booking: block conflicts with existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
