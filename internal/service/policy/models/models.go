package models

import "github.com/ufjf-cead/StudioBookingService/internal/domain"

// SpaceResponse ответ с данными пространства
type SpaceResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Note             *string `json:"note,omitempty"`
	BufferBeforeDays int     `json:"bufferBeforeDays"`
	BufferAfterDays  int     `json:"bufferAfterDays"`
}

// SpaceListResponse ответ со списком активных пространств
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// WindowResponse одно окно доступности команды
type WindowResponse struct {
	Weekday   int    `json:"weekday"`   // ISO: 1 = понедельник
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// LimitsResponse действующие лимиты бронирования
type LimitsResponse struct {
	MaxPerMonth           int  `json:"maxPerMonth"`
	MaxPerWeek            int  `json:"maxPerWeek"`
	MaxDaysPerWeek        int  `json:"maxDaysPerWeek"`
	MaxActivePerRequester int  `json:"maxActivePerRequester"`
	LeadTimeDays          int  `json:"leadTimeDays"`
	OpenHorizonDays       int  `json:"openHorizonDays"`
	AllowCrossWeekEvents  bool `json:"allowCrossWeekEvents"`
}

// PolicyResponse снимок действующей политики бронирования
type PolicyResponse struct {
	Limits    LimitsResponse   `json:"limits"`
	Windows   []WindowResponse `json:"windows"`
	Blackouts []string         `json:"blackouts"` // даты "2026-09-15" в пределах горизонта
}

// FromDomainSpaces конвертирует список пространств в DTO
func FromDomainSpaces(spaces []*domain.Space) *SpaceListResponse {
	resp := &SpaceListResponse{Spaces: make([]SpaceResponse, len(spaces))}
	for i, s := range spaces {
		resp.Spaces[i] = SpaceResponse{
			ID:               s.ID,
			Name:             s.Name,
			Note:             s.Note,
			BufferBeforeDays: s.BufferBeforeDays,
			BufferAfterDays:  s.BufferAfterDays,
		}
	}
	return resp
}

// FromDomainLimits конвертирует лимиты в DTO
func FromDomainLimits(l *domain.BookingLimits) LimitsResponse {
	return LimitsResponse{
		MaxPerMonth:           l.MaxPerMonth,
		MaxPerWeek:            l.MaxPerWeek,
		MaxDaysPerWeek:        l.MaxDaysPerWeek,
		MaxActivePerRequester: l.MaxActivePerRequester,
		LeadTimeDays:          l.LeadTimeDays,
		OpenHorizonDays:       l.OpenHorizonDays,
		AllowCrossWeekEvents:  l.AllowCrossWeekEvents,
	}
}
