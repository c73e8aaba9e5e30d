package get_requester_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	"github.com/ufjf-cead/StudioBookingService/internal/service/bookings"
	"github.com/ufjf-cead/StudioBookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequesterID = "некорректный ID запрашивающего"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/requesters/{requesterId}/bookings?includeRejected=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requesterID, err := strconv.ParseInt(vars["requesterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /requesters/{id}/bookings - Invalid requester ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequesterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /requesters/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю видит только сам запрашивающий
	if userID != requesterID {
		h.logger.Warn("GET /requesters/{id}/bookings - Access denied: requester_id=%d, user_id=%d",
			requesterID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	includeRejected := r.URL.Query().Get("includeRejected") == "true"

	result, err := h.service.GetRequesterBookings(r.Context(), &models.GetRequesterBookingsRequest{
		RequesterID:     requesterID,
		IncludeRejected: includeRejected,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /requesters/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequesterID)

		default:
			h.logger.Error("GET /requesters/{id}/bookings - Failed: requester_id=%d, error=%v",
				requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /requesters/{id}/bookings - %d bookings returned: requester_id=%d",
		len(result.Bookings), requesterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
