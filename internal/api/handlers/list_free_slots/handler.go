package list_free_slots

import (
	"errors"
	"net/http"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	listFreeSlots "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_free_slots"
)

const (
	msgMissingDraftToken = "отсутствует токен периода"
	msgInvalidDraftToken = "недействительный токен периода"
	msgExpiredDraftToken = "срок действия токена периода истёк"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgSpaceNotFound     = "пространство не найдено"
	msgTeamNotConfigured = "расписание команды не настроено"
)

type Handler struct {
	useCase ListFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-drafts/free-slots?draft=<token>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("draft")
	if token == "" {
		h.logger.Warn("GET /booking-drafts/free-slots - Missing draft token")
		handlers.RespondBadRequest(w, msgMissingDraftToken)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-drafts/free-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listFreeSlots.Request{
		RequesterID: requesterID,
		DraftToken:  token,
	})
	if err != nil {
		switch {
		case errors.Is(err, listFreeSlots.ErrExpiredDraft):
			h.logger.Warn("GET /booking-drafts/free-slots - Draft expired: requester_id=%d", requesterID)
			handlers.RespondBadRequest(w, msgExpiredDraftToken)

		case errors.Is(err, listFreeSlots.ErrInvalidDraft), errors.Is(err, listFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /booking-drafts/free-slots - Invalid draft: requester_id=%d", requesterID)
			handlers.RespondBadRequest(w, msgInvalidDraftToken)

		case errors.Is(err, listFreeSlots.ErrSpaceNotFound):
			h.logger.Warn("GET /booking-drafts/free-slots - Space not found: requester_id=%d", requesterID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, listFreeSlots.ErrTeamNotConfigured):
			h.logger.Error("GET /booking-drafts/free-slots - Team not configured")
			handlers.RespondServiceUnavailable(w, msgTeamNotConfigured)

		default:
			h.logger.Error("GET /booking-drafts/free-slots - Failed: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-drafts/free-slots - %d days resolved: space_id=%d, requester_id=%d",
		len(result.Days), result.SpaceID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
