package list_bookable_dates

import (
	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	listBookableDates "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_bookable_dates"
)

// BookableDatesResponse HTTP response model
type BookableDatesResponse struct {
	SpaceID int64    `json:"spaceId"`
	From    string   `json:"from"`  // "2026-09-01"
	To      string   `json:"to"`    // "2026-11-30"
	Dates   []string `json:"dates"` // даты по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listBookableDates.Response) *BookableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	return &BookableDatesResponse{
		SpaceID: resp.SpaceID,
		From:    resp.From.Format(domain.DateFormat),
		To:      resp.To.Format(domain.DateFormat),
		Dates:   dates,
	}
}
