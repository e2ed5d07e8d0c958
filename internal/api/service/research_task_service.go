package service

import (
	"context"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/logger"
)

// ResearchTaskService defines the interface for managing research tasks.
type ResearchTaskService interface {
	Create(ctx context.Context, userID string, req *dto.CreateResearchTaskRequest) (*entity.ResearchTask, error)
	GetByID(ctx context.Context, id, userID string) (*entity.ResearchTask, error)
	List(ctx context.Context, userID string, filter repository.ResearchTaskFilter) ([]entity.ResearchTask, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateResearchTaskRequest) (*entity.ResearchTask, error)
	Delete(ctx context.Context, id, userID string) error
}

// NewResearchTaskService creates a new research task service.
func NewResearchTaskService(taskRepo repository.ResearchTaskRepository, logger *logger.Logger) ResearchTaskService {
	return &researchTaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

type researchTaskService struct {
	taskRepo repository.ResearchTaskRepository
	logger   *logger.Logger
}

func (s *researchTaskService) Create(ctx context.Context, userID string, req *dto.CreateResearchTaskRequest) (*entity.ResearchTask, error) {
	task := &entity.ResearchTask{
		UserID:        userID,
		OpportunityID: req.OpportunityID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      entity.TaskPriority(req.Priority),
		Status:        entity.TaskStatus(req.Status),
		DueDate:       req.DueDate,
	}
	if task.Priority == "" {
		task.Priority = entity.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = entity.TaskStatusPending
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *researchTaskService) GetByID(ctx context.Context, id, userID string) (*entity.ResearchTask, error) {
	return s.taskRepo.FindByID(ctx, id, userID)
}

func (s *researchTaskService) List(ctx context.Context, userID string, filter repository.ResearchTaskFilter) ([]entity.ResearchTask, error) {
	return s.taskRepo.FindAll(ctx, userID, filter)
}

func (s *researchTaskService) Update(ctx context.Context, id, userID string, req *dto.UpdateResearchTaskRequest) (*entity.ResearchTask, error) {
	task, err := s.taskRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = entity.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		task.Status = entity.TaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("Failed to update research task", logger.ErrorField(err), logger.Field("task_id", id))
		return nil, err
	}
	return task, nil
}

func (s *researchTaskService) Delete(ctx context.Context, id, userID string) error {
	if err := s.taskRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete research task", logger.ErrorField(err), logger.Field("task_id", id))
		return err
	}
	return nil
}
