package select_period

import (
	"errors"
	"net/http"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	selectPeriod "github.com/ufjf-cead/StudioBookingService/internal/usecase/select_period"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSpaceNotFound       = "пространство не найдено"
	msgPeriodNotAvailable  = "выбранный период недоступен для бронирования"
	msgTeamNotConfigured   = "расписание команды не настроено"
	msgLimitsNotConfigured = "лимиты бронирования не настроены"
)

type Handler struct {
	useCase SelectPeriodUseCase
	logger  Logger
}

func NewHandler(useCase SelectPeriodUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SelectPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-drafts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /booking-drafts - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, selectPeriod.ErrSpaceNotFound):
			h.logger.Warn("POST /booking-drafts - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, selectPeriod.ErrInvalidInput):
			h.logger.Warn("POST /booking-drafts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, selectPeriod.ErrPeriodNotAvailable):
			h.logger.Warn("POST /booking-drafts - Period not available: space_id=%d, requester_id=%d",
				req.SpaceID, requesterID)
			handlers.RespondBadRequest(w, msgPeriodNotAvailable)

		case errors.Is(err, selectPeriod.ErrTeamNotConfigured):
			h.logger.Error("POST /booking-drafts - Team not configured")
			handlers.RespondServiceUnavailable(w, msgTeamNotConfigured)

		case errors.Is(err, selectPeriod.ErrLimitsNotConfigured):
			h.logger.Error("POST /booking-drafts - Limits not configured")
			handlers.RespondServiceUnavailable(w, msgLimitsNotConfigured)

		default:
			h.logger.Error("POST /booking-drafts - Failed: space_id=%d, error=%v", req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-drafts - Draft issued: space_id=%d, requester_id=%d, period=[%s, %s]",
		result.SpaceID, requesterID, req.Start, req.End)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
