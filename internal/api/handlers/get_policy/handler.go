package get_policy

import (
	"errors"
	"net/http"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/service/policy"
)

const (
	msgLimitsNotConfigured = "лимиты бронирования не настроены"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPolicy(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrLimitsNotConfigured):
			h.logger.Error("GET /policy - Limits not configured")
			handlers.RespondServiceUnavailable(w, msgLimitsNotConfigured)

		default:
			h.logger.Error("GET /policy - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /policy - Policy snapshot returned")
	handlers.RespondJSON(w, http.StatusOK, result)
}
