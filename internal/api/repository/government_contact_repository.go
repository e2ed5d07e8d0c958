package repository

import (
	"context"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// GovernmentContactFilter narrows contact list queries.
type GovernmentContactFilter struct {
	OpportunityID string
	Influence     string
	Department    string
	Search        string
}

// GovernmentContactRepository defines the interface for government contact
// data operations.
type GovernmentContactRepository interface {
	Create(ctx context.Context, contact *entity.GovernmentContact) error
	FindByID(ctx context.Context, id string) (*entity.GovernmentContact, error)
	FindAll(ctx context.Context, filter GovernmentContactFilter) ([]entity.GovernmentContact, error)
	Update(ctx context.Context, contact *entity.GovernmentContact) error
	Delete(ctx context.Context, id string) error
}

// NewGovernmentContactRepository creates a new GORM-based government
// contact repository.
func NewGovernmentContactRepository(db *gorm.DB) GovernmentContactRepository {
	return &governmentContactRepository{db: db}
}

type governmentContactRepository struct {
	db *gorm.DB
}

func (r *governmentContactRepository) Create(ctx context.Context, contact *entity.GovernmentContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *governmentContactRepository) FindByID(ctx context.Context, id string) (*entity.GovernmentContact, error) {
	var contact entity.GovernmentContact
	err := r.db.WithContext(ctx).
		Preload("Opportunity").
		Preload("Procurements").
		First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *governmentContactRepository) FindAll(ctx context.Context, filter GovernmentContactFilter) ([]entity.GovernmentContact, error) {
	query := r.db.WithContext(ctx).
		Preload("Opportunity").
		Preload("Procurements")

	if filter.OpportunityID != "" {
		query = query.Where("opportunity_id = ?", filter.OpportunityID)
	}
	if filter.Influence != "" {
		query = query.Where("influence = ?", filter.Influence)
	}
	if filter.Department != "" {
		query = query.Where("department ILIKE ?", "%"+filter.Department+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR title ILIKE ? OR department ILIKE ?", pattern, pattern, pattern)
	}

	var contacts []entity.GovernmentContact
	if err := query.Order("influence DESC, name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *governmentContactRepository) Update(ctx context.Context, contact *entity.GovernmentContact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *governmentContactRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.GovernmentContact{}, "id = ?", id).Error
}
