package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// OpportunityFilter narrows opportunity list queries.
type OpportunityFilter struct {
	Status   string
	Priority string
	SortBy   string
	Order    string
}

// Columns callers may sort opportunity lists by.
var opportunitySortColumns = map[string]bool{
	"created_at":        true,
	"updated_at":        true,
	"opportunity_score": true,
	"title":             true,
	"deadline_date":     true,
}

// OpportunityRepository defines the interface for opportunity data operations.
type OpportunityRepository interface {
	Create(ctx context.Context, opp *entity.Opportunity) error
	FindByID(ctx context.Context, id, userID string) (*entity.Opportunity, error)
	FindAll(ctx context.Context, userID string, filter OpportunityFilter) ([]entity.Opportunity, error)
	Update(ctx context.Context, opp *entity.Opportunity) error
	UpdateScore(ctx context.Context, id string, score int) error
	Delete(ctx context.Context, id, userID string) error
	FindCreatedBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.Opportunity, error)
}

// NewOpportunityRepository creates a new GORM-based opportunity repository.
func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

type opportunityRepository struct {
	db *gorm.DB
}

func (r *opportunityRepository) Create(ctx context.Context, opp *entity.Opportunity) error {
	return r.db.WithContext(ctx).Create(opp).Error
}

func (r *opportunityRepository) FindByID(ctx context.Context, id, userID string) (*entity.Opportunity, error) {
	var opp entity.Opportunity
	err := r.db.WithContext(ctx).
		Preload("Competitors", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("GovernmentContacts").
		Preload("GovernmentContacts.Procurements").
		Preload("ResearchTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Alerts", "is_read = ?", false).
		Where("id = ? AND user_id = ?", id, userID).
		First(&opp).Error
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *opportunityRepository) FindAll(ctx context.Context, userID string, filter OpportunityFilter) ([]entity.Opportunity, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	sortBy := filter.SortBy
	if !opportunitySortColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if filter.Order == "asc" {
		direction = "ASC"
	}

	var opps []entity.Opportunity
	if err := query.Order(sortBy + " " + direction).Find(&opps).Error; err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *opportunityRepository) Update(ctx context.Context, opp *entity.Opportunity) error {
	return r.db.WithContext(ctx).Save(opp).Error
}

func (r *opportunityRepository) UpdateScore(ctx context.Context, id string, score int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Opportunity{}).
		Where("id = ?", id).
		Update("opportunity_score", score).Error
}

func (r *opportunityRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&entity.CompetitorActivity{},
			&entity.Note{},
			&entity.Document{},
			&entity.ResearchTask{},
			&entity.Alert{},
		} {
			if err := tx.Where("opportunity_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&entity.Opportunity{}, "id = ?", id).Error
	})
}

// FindCreatedBetween returns the highest-scoring opportunities created in
// the window.
func (r *opportunityRepository) FindCreatedBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.Opportunity, error) {
	var opps []entity.Opportunity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start, end).
		Order("opportunity_score DESC").
		Limit(limit).
		Find(&opps).Error
	if err != nil {
		return nil, err
	}
	return opps, nil
}
