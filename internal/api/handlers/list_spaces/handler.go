package list_spaces

import (
	"net/http"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
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

// Handle GET /api/v1/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSpaces(r.Context())
	if err != nil {
		h.logger.Error("GET /spaces - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /spaces - %d spaces returned", len(result.Spaces))
	handlers.RespondJSON(w, http.StatusOK, result)
}
