package termservice

import "errors"

var (
	// ErrTermNotFound возвращается, когда терм согласия не найден
	ErrTermNotFound = errors.New("termservice client: term not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("termservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("termservice client: invalid response")
)
