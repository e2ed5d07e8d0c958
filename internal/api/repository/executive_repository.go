package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// ExecutiveFilter narrows executive list queries.
type ExecutiveFilter struct {
	CompanyID        string
	Title            string
	VulnerabilityMin *int
	VulnerabilityMax *int
}

// ExecutiveRepository defines the interface for executive data operations.
type ExecutiveRepository interface {
	Create(ctx context.Context, exec *entity.Executive) error
	FindByID(ctx context.Context, id, userID string) (*entity.Executive, error)
	FindAll(ctx context.Context, userID string, filter ExecutiveFilter) ([]entity.Executive, error)
	FindByCompany(ctx context.Context, companyID string) ([]entity.Executive, error)
	Update(ctx context.Context, exec *entity.Executive) error
	UpdateScore(ctx context.Context, id string, score int) error
	Delete(ctx context.Context, id, userID string) error
	FindVulnerableUpdatedBetween(ctx context.Context, userID string, start, end time.Time, minScore, limit int) ([]entity.Executive, error)
}

// NewExecutiveRepository creates a new GORM-based executive repository.
func NewExecutiveRepository(db *gorm.DB) ExecutiveRepository {
	return &executiveRepository{db: db}
}

type executiveRepository struct {
	db *gorm.DB
}

func (r *executiveRepository) Create(ctx context.Context, exec *entity.Executive) error {
	return r.db.WithContext(ctx).Create(exec).Error
}

func (r *executiveRepository) FindByID(ctx context.Context, id, userID string) (*entity.Executive, error) {
	var exec entity.Executive
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Alerts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&exec).Error
	if err != nil {
		return nil, err
	}
	return &exec, nil
}

func (r *executiveRepository) FindAll(ctx context.Context, userID string, filter ExecutiveFilter) ([]entity.Executive, error) {
	query := r.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ?", userID)

	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Title != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.VulnerabilityMin != nil {
		query = query.Where("vulnerability_score >= ?", *filter.VulnerabilityMin)
	}
	if filter.VulnerabilityMax != nil {
		query = query.Where("vulnerability_score < ?", *filter.VulnerabilityMax)
	}

	var execs []entity.Executive
	if err := query.Order("vulnerability_score DESC").Find(&execs).Error; err != nil {
		return nil, err
	}
	return execs, nil
}

func (r *executiveRepository) FindByCompany(ctx context.Context, companyID string) ([]entity.Executive, error) {
	var execs []entity.Executive
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&execs).Error
	if err != nil {
		return nil, err
	}
	return execs, nil
}

func (r *executiveRepository) Update(ctx context.Context, exec *entity.Executive) error {
	return r.db.WithContext(ctx).Save(exec).Error
}

// UpdateScore persists a recomputed vulnerability score without touching
// other columns.
func (r *executiveRepository) UpdateScore(ctx context.Context, id string, score int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Executive{}).
		Where("id = ?", id).
		Update("vulnerability_score", score).Error
}

func (r *executiveRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.Executive{}, "id = ?", id).Error
}

// FindVulnerableUpdatedBetween returns executives touched inside the window
// whose vulnerability is at or above minScore, parent company included.
func (r *executiveRepository) FindVulnerableUpdatedBetween(ctx context.Context, userID string, start, end time.Time, minScore, limit int) ([]entity.Executive, error) {
	var execs []entity.Executive
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ? AND updated_at >= ? AND updated_at <= ? AND vulnerability_score >= ?", userID, start, end, minScore).
		Order("vulnerability_score DESC").
		Limit(limit).
		Find(&execs).Error
	if err != nil {
		return nil, err
	}
	return execs, nil
}
