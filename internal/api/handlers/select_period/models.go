package select_period

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	selectPeriod "github.com/ufjf-cead/StudioBookingService/internal/usecase/select_period"
)

// SelectPeriodRequest HTTP request model
type SelectPeriodRequest struct {
	SpaceID int64  `json:"spaceId"`
	Start   string `json:"start"` // "2026-09-15"
	End     string `json:"end"`   // "2026-09-17"
}

// SelectPeriodResponse HTTP response model
type SelectPeriodResponse struct {
	SpaceID    int64  `json:"spaceId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	DraftToken string `json:"draftToken"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectPeriodRequest) ToUseCaseRequest(requesterID int64) (*selectPeriod.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.Start)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, r.End)
	if err != nil {
		return nil, err
	}

	return &selectPeriod.Request{
		RequesterID: requesterID,
		SpaceID:     r.SpaceID,
		Start:       start,
		End:         end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectPeriod.Response) *SelectPeriodResponse {
	return &SelectPeriodResponse{
		SpaceID:    resp.SpaceID,
		Start:      resp.Start.Format(domain.DateFormat),
		End:        resp.End.Format(domain.DateFormat),
		DraftToken: resp.DraftToken,
	}
}
