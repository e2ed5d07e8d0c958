package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// CompetitorActivityFilter narrows competitor activity list queries.
type CompetitorActivityFilter struct {
	OpportunityID  string
	ThreatLevel    string
	CompetitorName string
	SinceDays      int
}

// CompetitorActivityRepository defines the interface for competitor
// activity data operations. Ownership is enforced through the parent
// opportunity's user.
type CompetitorActivityRepository interface {
	Create(ctx context.Context, activity *entity.CompetitorActivity) error
	FindByID(ctx context.Context, id, userID string) (*entity.CompetitorActivity, error)
	FindAll(ctx context.Context, userID string, filter CompetitorActivityFilter) ([]entity.CompetitorActivity, error)
	Update(ctx context.Context, activity *entity.CompetitorActivity) error
	Delete(ctx context.Context, id, userID string) error
	FindByActivityDateBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.CompetitorActivity, error)
}

// NewCompetitorActivityRepository creates a new GORM-based competitor
// activity repository.
func NewCompetitorActivityRepository(db *gorm.DB) CompetitorActivityRepository {
	return &competitorActivityRepository{db: db}
}

type competitorActivityRepository struct {
	db *gorm.DB
}

func (r *competitorActivityRepository) Create(ctx context.Context, activity *entity.CompetitorActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *competitorActivityRepository) FindByID(ctx context.Context, id, userID string) (*entity.CompetitorActivity, error) {
	var activity entity.CompetitorActivity
	err := r.ownedByUser(ctx, userID).
		Preload("Opportunity").
		Where("competitor_activities.id = ?", id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *competitorActivityRepository) FindAll(ctx context.Context, userID string, filter CompetitorActivityFilter) ([]entity.CompetitorActivity, error) {
	query := r.ownedByUser(ctx, userID).Preload("Opportunity")

	if filter.OpportunityID != "" {
		query = query.Where("competitor_activities.opportunity_id = ?", filter.OpportunityID)
	}
	if filter.ThreatLevel != "" {
		query = query.Where("competitor_activities.threat_level = ?", filter.ThreatLevel)
	}
	if filter.CompetitorName != "" {
		query = query.Where("competitor_activities.competitor_name ILIKE ?", "%"+filter.CompetitorName+"%")
	}
	if filter.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -filter.SinceDays)
		query = query.Where("competitor_activities.activity_date >= ?", since)
	}

	var activities []entity.CompetitorActivity
	if err := query.Order("competitor_activities.activity_date DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *competitorActivityRepository) Update(ctx context.Context, activity *entity.CompetitorActivity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *competitorActivityRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND opportunity_id IN (?)",
			id,
			r.db.Model(&entity.Opportunity{}).Select("id").Where("user_id = ?", userID),
		).
		Delete(&entity.CompetitorActivity{}).Error
}

// FindByActivityDateBetween returns the most recent activities dated inside
// the window.
func (r *competitorActivityRepository) FindByActivityDateBetween(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.CompetitorActivity, error) {
	var activities []entity.CompetitorActivity
	err := r.ownedByUser(ctx, userID).
		Where("competitor_activities.activity_date >= ? AND competitor_activities.activity_date <= ?", start, end).
		Order("competitor_activities.activity_date DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *competitorActivityRepository) ownedByUser(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.CompetitorActivity{}).
		Joins("JOIN opportunities ON opportunities.id = competitor_activities.opportunity_id").
		Where("opportunities.user_id = ?", userID)
}
