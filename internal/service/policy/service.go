package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	limitsRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/limits"
	"github.com/ufjf-cead/StudioBookingService/internal/service/policy/models"
)

// Service сервис для чтения конфигурации бронирования
// Пространства, окна доступности, blackout-даты и лимиты принадлежат
// администраторам; движок бронирования их только читает
type Service struct {
	spaceRepo    SpaceRepository
	scheduleRepo ScheduleRepository
	limitsRepo   LimitsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(
	spaceRepo SpaceRepository,
	scheduleRepo ScheduleRepository,
	limitsRepo LimitsRepository,
	logger Logger,
) *Service {
	return &Service{
		spaceRepo:    spaceRepo,
		scheduleRepo: scheduleRepo,
		limitsRepo:   limitsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListSpaces возвращает все активные пространства
func (s *Service) ListSpaces(ctx context.Context) (*models.SpaceListResponse, error) {
	s.logger.Info("ListSpaces: fetching active spaces")

	spaces, err := s.spaceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListSpaces: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpaces - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSpaces: successfully fetched %d spaces", len(spaces))
	return models.FromDomainSpaces(spaces), nil
}

// GetPolicy возвращает снимок действующей политики: лимиты, окна доступности
// и blackout-даты в пределах горизонта агенды
func (s *Service) GetPolicy(ctx context.Context) (*models.PolicyResponse, error) {
	s.logger.Info("GetPolicy: fetching booking policy snapshot")

	limits, err := s.limitsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, limitsRepo.ErrLimitsNotFound) {
			s.logger.Error("GetPolicy: booking limits not configured")
			return nil, ErrLimitsNotConfigured
		}
		s.logger.Error("GetPolicy: failed to get limits: %v", err)
		return nil, fmt.Errorf("%w: GetPolicy - failed to get limits: %v", ErrInternal, err)
	}

	windows, err := s.scheduleRepo.ListWindows(ctx)
	if err != nil {
		s.logger.Error("GetPolicy: failed to get team windows: %v", err)
		return nil, fmt.Errorf("%w: GetPolicy - failed to get team windows: %v", ErrInternal, err)
	}

	today := domain.TruncateToDate(s.timeProvider.Now())
	horizon := today.AddDate(0, 0, limits.OpenHorizonDays)
	blackouts, err := s.scheduleRepo.ListBlackoutsBetween(ctx, today, horizon)
	if err != nil {
		s.logger.Error("GetPolicy: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: GetPolicy - failed to get blackouts: %v", ErrInternal, err)
	}

	resp := &models.PolicyResponse{
		Limits:    models.FromDomainLimits(limits),
		Windows:   make([]models.WindowResponse, len(windows)),
		Blackouts: make([]string, len(blackouts)),
	}
	for i, w := range windows {
		resp.Windows[i] = models.WindowResponse{
			Weekday:   w.Weekday,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		}
	}
	for i, b := range blackouts {
		resp.Blackouts[i] = b.Date.Format(domain.DateFormat)
	}

	s.logger.Info("GetPolicy: snapshot with %d windows, %d blackouts", len(windows), len(blackouts))
	return resp, nil
}
