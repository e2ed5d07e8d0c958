package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// AlertFilter narrows alert list queries.
type AlertFilter struct {
	Type     string
	Severity string
	IsRead   *bool
}

// AlertRepository defines the interface for alert data operations.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	FindAll(ctx context.Context, userID string, filter AlertFilter, limit int) ([]entity.Alert, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
	FindUnreadCreatedBetween(ctx context.Context, userID string, start, end time.Time) ([]entity.Alert, error)
}

// NewAlertRepository creates a new GORM-based alert repository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

type alertRepository struct {
	db *gorm.DB
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) FindAll(ctx context.Context, userID string, filter AlertFilter, limit int) ([]entity.Alert, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}

	var alerts []entity.Alert
	err := query.
		Order("is_read ASC, created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Alert{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *alertRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.Alert{}, "id = ?", id).Error
}

// FindUnreadCreatedBetween returns all unread alerts created in the window,
// newest first.
func (r *alertRepository) FindUnreadCreatedBetween(ctx context.Context, userID string, start, end time.Time) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ? AND created_at >= ? AND created_at <= ?", userID, false, start, end).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
