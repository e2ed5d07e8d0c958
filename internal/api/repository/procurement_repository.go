package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// ProcurementFilter narrows procurement list queries.
type ProcurementFilter struct {
	Region        string
	Status        string
	ServiceGap    bool
	Bottleneck    bool
	PublishedDays int
}

// ProcurementRepository defines the interface for procurement data
// operations.
type ProcurementRepository interface {
	Create(ctx context.Context, proc *entity.Procurement) error
	FindByID(ctx context.Context, id, userID string) (*entity.Procurement, error)
	FindAll(ctx context.Context, userID string, filter ProcurementFilter) ([]entity.Procurement, error)
	Update(ctx context.Context, proc *entity.Procurement) error
	Delete(ctx context.Context, id, userID string) error
	FindOpenWithDeadlineBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.Procurement, error)
}

// NewProcurementRepository creates a new GORM-based procurement repository.
func NewProcurementRepository(db *gorm.DB) ProcurementRepository {
	return &procurementRepository{db: db}
}

type procurementRepository struct {
	db *gorm.DB
}

func (r *procurementRepository) Create(ctx context.Context, proc *entity.Procurement) error {
	return r.db.WithContext(ctx).Create(proc).Error
}

func (r *procurementRepository) FindByID(ctx context.Context, id, userID string) (*entity.Procurement, error) {
	var proc entity.Procurement
	err := r.db.WithContext(ctx).
		Preload("Contacts").
		Preload("Documents").
		Where("id = ? AND user_id = ?", id, userID).
		First(&proc).Error
	if err != nil {
		return nil, err
	}
	return &proc, nil
}

func (r *procurementRepository) FindAll(ctx context.Context, userID string, filter ProcurementFilter) ([]entity.Procurement, error) {
	query := r.db.WithContext(ctx).
		Preload("Contacts").
		Preload("Documents").
		Where("user_id = ?", userID)

	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ServiceGap {
		query = query.Where("service_gap = ?", true)
	}
	if filter.Bottleneck {
		query = query.Where("bottleneck = ?", true)
	}
	if filter.PublishedDays > 0 {
		since := time.Now().AddDate(0, 0, -filter.PublishedDays)
		query = query.Where("publish_date >= ?", since)
	}

	var procs []entity.Procurement
	if err := query.Order("submission_deadline ASC NULLS LAST").Find(&procs).Error; err != nil {
		return nil, err
	}
	return procs, nil
}

func (r *procurementRepository) Update(ctx context.Context, proc *entity.Procurement) error {
	return r.db.WithContext(ctx).Save(proc).Error
}

func (r *procurementRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.Procurement{}, "id = ?", id).Error
}

// FindOpenWithDeadlineBetween returns open tenders with a submission
// deadline inside the window, soonest first.
func (r *procurementRepository) FindOpenWithDeadlineBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.Procurement, error) {
	var procs []entity.Procurement
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND submission_deadline >= ? AND submission_deadline <= ?",
			userID, entity.ProcurementStatusOpen, start, end).
		Order("submission_deadline ASC").
		Limit(limit).
		Find(&procs).Error
	if err != nil {
		return nil, err
	}
	return procs, nil
}
