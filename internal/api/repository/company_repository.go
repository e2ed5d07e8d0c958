package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// CompanyFilter narrows company list queries.
type CompanyFilter struct {
	GtmGap       bool
	FundedWithin int // days; 0 means no filter
	Search       string
}

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindByID(ctx context.Context, id, userID string) (*entity.Company, error)
	FindAll(ctx context.Context, userID string, filter CompanyFilter) ([]entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	UpdateScore(ctx context.Context, id string, score int) error
	Delete(ctx context.Context, id, userID string) error
	FindUnderPressure(ctx context.Context, userID string, minPressure, minExecVulnerability, limit int) ([]entity.Company, error)
}

// NewCompanyRepository creates a new GORM-based company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

type companyRepository struct {
	db *gorm.DB
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id, userID string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Preload("Executives", func(db *gorm.DB) *gorm.DB {
			return db.Order("vulnerability_score DESC")
		}).
		Preload("Alerts", "is_read = ?", false).
		Where("id = ? AND user_id = ?", id, userID).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll(ctx context.Context, userID string, filter CompanyFilter) ([]entity.Company, error) {
	query := r.db.WithContext(ctx).
		Preload("Executives", func(db *gorm.DB) *gorm.DB {
			return db.Order("vulnerability_score DESC")
		}).
		Preload("Alerts", "is_read = ?", false).
		Where("user_id = ?", userID)

	if filter.GtmGap {
		query = query.Where("gtm_gap_detected = ?", true)
	}
	if filter.FundedWithin > 0 {
		since := time.Now().AddDate(0, 0, -filter.FundedWithin)
		query = query.Where("last_funding_date >= ?", since)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR industry ILIKE ?", pattern, pattern)
	}
	var companies []entity.Company
	if err := query.Order("pressure_score DESC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// UpdateScore persists a recomputed pressure score without touching other
// columns.
func (r *companyRepository) UpdateScore(ctx context.Context, id string, score int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("id = ?", id).
		Update("pressure_score", score).Error
}

func (r *companyRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&entity.Alert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.Executive{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&entity.Company{}, "id = ?", id).Error
	})
}

// FindUnderPressure returns the highest-pressure companies at or above
// minPressure, including only executives at or above minExecVulnerability.
func (r *companyRepository) FindUnderPressure(ctx context.Context, userID string, minPressure, minExecVulnerability, limit int) ([]entity.Company, error) {
	var companies []entity.Company
	err := r.db.WithContext(ctx).
		Preload("Executives", "vulnerability_score >= ?", minExecVulnerability).
		Where("user_id = ? AND pressure_score >= ?", userID, minPressure).
		Order("pressure_score DESC").
		Limit(limit).
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
