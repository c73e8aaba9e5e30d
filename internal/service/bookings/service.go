package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/booking"
	"github.com/ufjf-cead/StudioBookingService/internal/service/bookings/models"
)

// Service сервис для работы с заявками на бронирование
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Запрашивающий может видеть только собственное бронирование
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%d", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.RequesterID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetRequesterBookings получает историю бронирований запрашивающего
// Опционально включает отклонённые бронирования
func (s *Service) GetRequesterBookings(ctx context.Context, req *models.GetRequesterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRequesterBookings: fetching bookings for requester=%d, includeRejected=%t",
		req.RequesterID, req.IncludeRejected)

	if req.RequesterID <= 0 {
		s.logger.Warn("GetRequesterBookings: invalid requester id=%d", req.RequesterID)
		return nil, fmt.Errorf("%w: requester_id must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByRequester(ctx, req.RequesterID, req.IncludeRejected)
	if err != nil {
		s.logger.Error("GetRequesterBookings: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetRequesterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRequesterBookings: successfully fetched %d bookings for requester=%d",
		len(bookings), req.RequesterID)
	return models.FromDomainBookingList(bookings), nil
}

// Reject отклоняет бронирование от имени команды студии
// Отклонённое бронирование исключается из занятости и квот, но остается в истории
func (s *Service) Reject(ctx context.Context, bookingID int64, req *models.RejectBookingRequest) error {
	s.logger.Info("Reject: rejecting booking id=%d", bookingID)

	if err := s.bookingRepo.Reject(ctx, bookingID, req.Note); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Reject: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrAlreadyRejected) {
			s.logger.Warn("Reject: booking id=%d already rejected", bookingID)
			return ErrAlreadyRejected
		}
		s.logger.Error("Reject: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: successfully rejected booking id=%d", bookingID)
	return nil
}
