package policy

import "errors"

var (
	// ErrLimitsNotConfigured возвращается, когда запись лимитов отсутствует
	ErrLimitsNotConfigured = errors.New("booking limits not configured")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
