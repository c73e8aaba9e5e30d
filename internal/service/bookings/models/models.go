package models

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// Request модели

// GetRequesterBookingsRequest запрос на получение бронирований запрашивающего
type GetRequesterBookingsRequest struct {
	RequesterID     int64 `json:"requesterId"`
	IncludeRejected bool  `json:"includeRejected,omitempty"` // Включить отклонённые бронирования
}

// RejectBookingRequest запрос на отклонение бронирования
type RejectBookingRequest struct {
	Note *string `json:"note,omitempty"` // Причина отклонения (опционально)
}

// Response модели

// BlockResponse один блок времени бронирования
type BlockResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64           `json:"id"`
	RequesterID int64           `json:"requesterId"`
	SpaceID     int64           `json:"spaceId"`
	TermID      int64           `json:"termId"`
	Note        string          `json:"note"`
	Blocks      []BlockResponse `json:"blocks"`

	Rejected     bool    `json:"rejected"`
	RejectedAt   *string `json:"rejectedAt,omitempty"` // ISO 8601 format
	RejectedNote *string `json:"rejectedNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	blocks := make([]BlockResponse, len(b.Blocks))
	for i, block := range b.Blocks {
		blocks[i] = BlockResponse{
			ID:        block.ID,
			Date:      block.Date.Format(domain.DateFormat),
			StartTime: block.StartTime.String(),
			EndTime:   block.EndTime.String(),
		}
	}

	resp := &BookingResponse{
		ID:           b.ID,
		RequesterID:  b.RequesterID,
		SpaceID:      b.SpaceID,
		TermID:       b.TermID,
		Note:         b.Note,
		Blocks:       blocks,
		Rejected:     !b.IsActive(),
		RejectedNote: b.RejectedNote,
		CreatedAt:    b.CreatedAt,
	}

	// Конвертируем RejectedAt в строку ISO 8601
	if b.RejectedAt != nil {
		rejectedStr := b.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &rejectedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}
