package list_spaces

import (
	"context"

	"github.com/ufjf-cead/StudioBookingService/internal/service/policy/models"
)

type PolicyService interface {
	ListSpaces(ctx context.Context) (*models.SpaceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
