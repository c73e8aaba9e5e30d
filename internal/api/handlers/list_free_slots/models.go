package list_free_slots

import (
	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	listFreeSlots "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_free_slots"
)

// SlotResponse один свободный интервал времени
type SlotResponse struct {
	Start string `json:"start"` // "08:00"
	End   string `json:"end"`   // "09:00"
}

// DaySlotsResponse свободные слоты одного дня
type DaySlotsResponse struct {
	Date  string         `json:"date"` // "2026-09-15"
	Slots []SlotResponse `json:"slots"`
}

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	SpaceID int64              `json:"spaceId"`
	Start   string             `json:"start"`
	End     string             `json:"end"`
	Days    []DaySlotsResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listFreeSlots.Response) *FreeSlotsResponse {
	days := make([]DaySlotsResponse, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for j, s := range day.Slots {
			slots[j] = SlotResponse{
				Start: s.Start.String(),
				End:   s.End.String(),
			}
		}
		days[i] = DaySlotsResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		}
	}

	return &FreeSlotsResponse{
		SpaceID: resp.SpaceID,
		Start:   resp.Start.Format(domain.DateFormat),
		End:     resp.End.Format(domain.DateFormat),
		Days:    days,
	}
}
