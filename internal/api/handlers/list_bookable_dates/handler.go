package list_bookable_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	listBookableDates "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_bookable_dates"
)

const (
	msgInvalidSpaceID      = "некорректный ID пространства"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSpaceNotFound       = "пространство не найдено"
	msgTeamNotConfigured   = "расписание команды не настроено"
	msgLimitsNotConfigured = "лимиты бронирования не настроены"
)

type Handler struct {
	useCase ListBookableDatesUseCase
	logger  Logger
}

func NewHandler(useCase ListBookableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/bookable-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/bookable-dates - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spaces/{id}/bookable-dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listBookableDates.Request{
		RequesterID: requesterID,
		SpaceID:     spaceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, listBookableDates.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/bookable-dates - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, listBookableDates.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/bookable-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpaceID)

		case errors.Is(err, listBookableDates.ErrTeamNotConfigured):
			h.logger.Error("GET /spaces/{id}/bookable-dates - Team not configured")
			handlers.RespondServiceUnavailable(w, msgTeamNotConfigured)

		case errors.Is(err, listBookableDates.ErrLimitsNotConfigured):
			h.logger.Error("GET /spaces/{id}/bookable-dates - Limits not configured")
			handlers.RespondServiceUnavailable(w, msgLimitsNotConfigured)

		default:
			h.logger.Error("GET /spaces/{id}/bookable-dates - Failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/bookable-dates - %d dates returned: space_id=%d, requester_id=%d",
		len(result.Dates), spaceID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
