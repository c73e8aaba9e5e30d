package limits

import "errors"

var (
	// ErrLimitsNotFound возвращается, когда запись лимитов отсутствует
	// Это ошибка конфигурации: повторный запрос её не исправит
	ErrLimitsNotFound = errors.New("limits.repository: booking limits not configured")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("limits.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("limits.repository: failed to scan row")
)
