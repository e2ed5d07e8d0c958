package service

import (
	"context"

	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/logger"
)

// defaultAlertLimit bounds alert list queries.
const defaultAlertLimit = 100

// AlertService defines the interface for reading and dismissing alerts.
type AlertService interface {
	List(ctx context.Context, userID string, filter repository.AlertFilter, limit int) ([]entity.Alert, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// NewAlertService creates a new alert service.
func NewAlertService(alertRepo repository.AlertRepository, logger *logger.Logger) AlertService {
	return &alertService{
		alertRepo: alertRepo,
		logger:    logger,
	}
}

type alertService struct {
	alertRepo repository.AlertRepository
	logger    *logger.Logger
}

func (s *alertService) List(ctx context.Context, userID string, filter repository.AlertFilter, limit int) ([]entity.Alert, error) {
	if limit <= 0 || limit > defaultAlertLimit {
		limit = defaultAlertLimit
	}
	return s.alertRepo.FindAll(ctx, userID, filter, limit)
}

func (s *alertService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.alertRepo.MarkRead(ctx, id, userID); err != nil {
		s.logger.Error("Failed to mark alert read", logger.ErrorField(err), logger.Field("alert_id", id))
		return err
	}
	return nil
}

func (s *alertService) Delete(ctx context.Context, id, userID string) error {
	if err := s.alertRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete alert", logger.ErrorField(err), logger.Field("alert_id", id))
		return err
	}
	return nil
}
