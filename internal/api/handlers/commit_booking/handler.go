package commit_booking

import (
	"errors"
	"net/http"

	"github.com/ufjf-cead/StudioBookingService/internal/api/handlers"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	commitBooking "github.com/ufjf-cead/StudioBookingService/internal/usecase/commit_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidBlockFormat  = "некорректный формат блока, ожидается дата YYYY-MM-DD и время HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidDraftToken   = "недействительный токен периода"
	msgExpiredDraftToken   = "срок действия токена периода истёк"
	msgSpaceNotFound       = "пространство не найдено"
	msgTermNotFound        = "терм согласия не найден"
	msgBlockOutsideWindow  = "блок нарушает правила расписания"
	msgQuotaExceeded       = "превышены квоты бронирования"
	msgBlockConflict       = "блок пересекается с существующим бронированием"
	msgTeamNotConfigured   = "расписание команды не настроено"
	msgLimitsNotConfigured = "лимиты бронирования не настроены"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CommitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requesterID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse blocks: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitBooking.ErrBlockConflict):
			h.logger.Warn("POST /bookings - Block conflict: requester_id=%d, %v", requesterID, err)
			handlers.RespondConflict(w, msgBlockConflict)

		case errors.Is(err, commitBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: requester_id=%d, %v", requesterID, err)
			handlers.RespondBadRequest(w, msgQuotaExceeded)

		case errors.Is(err, commitBooking.ErrBlockOutsideWindow):
			h.logger.Warn("POST /bookings - Block outside window: requester_id=%d, %v", requesterID, err)
			handlers.RespondBadRequest(w, msgBlockOutsideWindow)

		case errors.Is(err, commitBooking.ErrExpiredDraft):
			h.logger.Warn("POST /bookings - Draft expired: requester_id=%d", requesterID)
			handlers.RespondBadRequest(w, msgExpiredDraftToken)

		case errors.Is(err, commitBooking.ErrInvalidDraft):
			h.logger.Warn("POST /bookings - Invalid draft: requester_id=%d", requesterID)
			handlers.RespondBadRequest(w, msgInvalidDraftToken)

		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: requester_id=%d, %v", requesterID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, commitBooking.ErrSpaceNotFound):
			h.logger.Warn("POST /bookings - Space not found: requester_id=%d", requesterID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, commitBooking.ErrTermNotFound):
			h.logger.Warn("POST /bookings - Term not found: requester_id=%d, term_id=%d", requesterID, req.TermID)
			handlers.RespondNotFound(w, msgTermNotFound)

		case errors.Is(err, commitBooking.ErrTeamNotConfigured):
			h.logger.Error("POST /bookings - Team not configured")
			handlers.RespondServiceUnavailable(w, msgTeamNotConfigured)

		case errors.Is(err, commitBooking.ErrLimitsNotConfigured):
			h.logger.Error("POST /bookings - Limits not configured")
			handlers.RespondServiceUnavailable(w, msgLimitsNotConfigured)

		default:
			h.logger.Error("POST /bookings - Failed: requester_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking committed: booking_id=%d, requester_id=%d, space_id=%d",
		result.BookingID, requesterID, result.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
