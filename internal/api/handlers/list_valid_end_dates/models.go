package list_valid_end_dates

import (
	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	listValidEndDates "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_valid_end_dates"
)

// ValidEndDatesResponse HTTP response model
type ValidEndDatesResponse struct {
	SpaceID int64    `json:"spaceId"`
	Start   string   `json:"start"` // "2026-09-15"
	Dates   []string `json:"dates"` // допустимые даты окончания по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listValidEndDates.Response) *ValidEndDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	return &ValidEndDatesResponse{
		SpaceID: resp.SpaceID,
		Start:   resp.Start.Format(domain.DateFormat),
		Dates:   dates,
	}
}
