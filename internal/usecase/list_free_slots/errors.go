package list_free_slots

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда пространство не найдено или неактивно
	ErrSpaceNotFound = errors.New("list_free_slots: space not found")

	// ErrTeamNotConfigured возвращается, когда у команды нет ни одного окна доступности
	ErrTeamNotConfigured = errors.New("list_free_slots: team availability not configured")

	// ErrInvalidDraft возвращается при повреждённом или подделанном токене периода
	ErrInvalidDraft = errors.New("list_free_slots: invalid draft token")

	// ErrExpiredDraft возвращается, когда срок действия токена периода истёк
	ErrExpiredDraft = errors.New("list_free_slots: draft token expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_free_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_free_slots: internal error")
)
