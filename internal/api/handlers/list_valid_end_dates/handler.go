package list_valid_end_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	listValidEndDates "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_valid_end_dates"
)

const (
	msgInvalidSpaceID      = "некорректный ID пространства"
	msgInvalidStartDate    = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSpaceNotFound       = "пространство не найдено"
	msgStartOutsideWindow  = "дата начала вне разрешённого окна бронирования"
	msgTeamNotConfigured   = "расписание команды не настроено"
	msgLimitsNotConfigured = "лимиты бронирования не настроены"
)

type Handler struct {
	useCase ListValidEndDatesUseCase
	logger  Logger
}

func NewHandler(useCase ListValidEndDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/valid-end-dates?start=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/valid-end-dates - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	start, err := time.Parse(domain.DateFormat, r.URL.Query().Get("start"))
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/valid-end-dates - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spaces/{id}/valid-end-dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listValidEndDates.Request{
		RequesterID: requesterID,
		SpaceID:     spaceID,
		Start:       start,
	})
	if err != nil {
		switch {
		case errors.Is(err, listValidEndDates.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/valid-end-dates - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, listValidEndDates.ErrInvalidStartDate):
			h.logger.Warn("GET /spaces/{id}/valid-end-dates - Start outside window: space_id=%d", spaceID)
			handlers.RespondBadRequest(w, msgStartOutsideWindow)

		case errors.Is(err, listValidEndDates.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/valid-end-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)

		case errors.Is(err, listValidEndDates.ErrTeamNotConfigured):
			h.logger.Error("GET /spaces/{id}/valid-end-dates - Team not configured")
			handlers.RespondServiceUnavailable(w, msgTeamNotConfigured)

		case errors.Is(err, listValidEndDates.ErrLimitsNotConfigured):
			h.logger.Error("GET /spaces/{id}/valid-end-dates - Limits not configured")
			handlers.RespondServiceUnavailable(w, msgLimitsNotConfigured)

		default:
			h.logger.Error("GET /spaces/{id}/valid-end-dates - Failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/valid-end-dates - %d dates returned: space_id=%d, requester_id=%d",
		len(result.Dates), spaceID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
