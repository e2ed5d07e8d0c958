package repository

import (
	"context"

	"gorm.io/gorm"

	"regintel/internal/entity"
)

// ResearchTaskFilter narrows research task list queries.
type ResearchTaskFilter struct {
	OpportunityID string
	Status        string
}

// ResearchTaskRepository defines the interface for research task data
// operations.
type ResearchTaskRepository interface {
	Create(ctx context.Context, task *entity.ResearchTask) error
	FindByID(ctx context.Context, id, userID string) (*entity.ResearchTask, error)
	FindAll(ctx context.Context, userID string, filter ResearchTaskFilter) ([]entity.ResearchTask, error)
	Update(ctx context.Context, task *entity.ResearchTask) error
	Delete(ctx context.Context, id, userID string) error
}

// NewResearchTaskRepository creates a new GORM-based research task
// repository.
func NewResearchTaskRepository(db *gorm.DB) ResearchTaskRepository {
	return &researchTaskRepository{db: db}
}

type researchTaskRepository struct {
	db *gorm.DB
}

func (r *researchTaskRepository) Create(ctx context.Context, task *entity.ResearchTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *researchTaskRepository) FindByID(ctx context.Context, id, userID string) (*entity.ResearchTask, error) {
	var task entity.ResearchTask
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *researchTaskRepository) FindAll(ctx context.Context, userID string, filter ResearchTaskFilter) ([]entity.ResearchTask, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.OpportunityID != "" {
		query = query.Where("opportunity_id = ?", filter.OpportunityID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var tasks []entity.ResearchTask
	err := query.
		Order("status ASC, priority DESC, created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *researchTaskRepository) Update(ctx context.Context, task *entity.ResearchTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *researchTaskRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.ResearchTask{}, "id = ?", id).Error
}
