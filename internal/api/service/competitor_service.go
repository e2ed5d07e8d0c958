package service

import (
	"context"
	"fmt"
	"sort"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/logger"
)

// CompetitorService defines the interface for tracking competitor moves
// against opportunities.
type CompetitorService interface {
	Create(ctx context.Context, userID string, req *dto.CreateCompetitorActivityRequest) (*entity.CompetitorActivity, error)
	GetByID(ctx context.Context, id, userID string) (*entity.CompetitorActivity, error)
	List(ctx context.Context, userID string, filter repository.CompetitorActivityFilter) (*dto.CompetitorActivityListResponse, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateCompetitorActivityRequest) (*entity.CompetitorActivity, error)
	Delete(ctx context.Context, id, userID string) error
}

// NewCompetitorService creates a new competitor activity service.
func NewCompetitorService(activityRepo repository.CompetitorActivityRepository, opportunityRepo repository.OpportunityRepository, alertRepo repository.AlertRepository, logger *logger.Logger) CompetitorService {
	return &competitorService{
		activityRepo:    activityRepo,
		opportunityRepo: opportunityRepo,
		alertRepo:       alertRepo,
		logger:          logger,
	}
}

type competitorService struct {
	activityRepo    repository.CompetitorActivityRepository
	opportunityRepo repository.OpportunityRepository
	alertRepo       repository.AlertRepository
	logger          *logger.Logger
}

// Create records an activity against an owned opportunity. High and critical
// threat levels raise a competitor alert immediately.
func (s *competitorService) Create(ctx context.Context, userID string, req *dto.CreateCompetitorActivityRequest) (*entity.CompetitorActivity, error) {
	opp, err := s.opportunityRepo.FindByID(ctx, req.OpportunityID, userID)
	if err != nil {
		return nil, err
	}

	activity := &entity.CompetitorActivity{
		OpportunityID:  opp.ID,
		CompetitorName: req.CompetitorName,
		ActivityType:   req.ActivityType,
		ActivityDate:   req.ActivityDate,
		Description:    req.Description,
		SourceURL:      req.SourceURL,
		ThreatLevel:    entity.ThreatLevel(req.ThreatLevel),
	}
	if activity.ThreatLevel == "" {
		activity.ThreatLevel = entity.ThreatLow
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	if activity.ThreatLevel == entity.ThreatHigh || activity.ThreatLevel == entity.ThreatCritical {
		s.createThreatAlert(ctx, userID, activity, opp)
	}

	return activity, nil
}

func (s *competitorService) GetByID(ctx context.Context, id, userID string) (*entity.CompetitorActivity, error) {
	return s.activityRepo.FindByID(ctx, id, userID)
}

// List returns activities plus a per-competitor rollup of the result set.
func (s *competitorService) List(ctx context.Context, userID string, filter repository.CompetitorActivityFilter) (*dto.CompetitorActivityListResponse, error) {
	activities, err := s.activityRepo.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]*dto.CompetitorSummary)
	for i := range activities {
		activity := &activities[i]
		summary, ok := summaries[activity.CompetitorName]
		if !ok {
			summary = &dto.CompetitorSummary{
				Name:         activity.CompetitorName,
				ThreatLevels: make(map[string]int),
			}
			summaries[activity.CompetitorName] = summary
		}
		summary.TotalActivities++
		summary.ThreatLevels[string(activity.ThreatLevel)]++
		if summary.LatestActivity == nil || activity.ActivityDate.After(*summary.LatestActivity) {
			date := activity.ActivityDate
			summary.LatestActivity = &date
		}
		if activity.Opportunity != nil && !containsString(summary.Opportunities, activity.Opportunity.Title) {
			summary.Opportunities = append(summary.Opportunities, activity.Opportunity.Title)
		}
	}

	result := make([]dto.CompetitorSummary, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalActivities != result[j].TotalActivities {
			return result[i].TotalActivities > result[j].TotalActivities
		}
		return result[i].Name < result[j].Name
	})

	return &dto.CompetitorActivityListResponse{
		Activities: activities,
		Summary:    result,
		Total:      len(activities),
	}, nil
}

func (s *competitorService) Update(ctx context.Context, id, userID string, req *dto.UpdateCompetitorActivityRequest) (*entity.CompetitorActivity, error) {
	activity, err := s.activityRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.CompetitorName != nil {
		activity.CompetitorName = *req.CompetitorName
	}
	if req.ActivityType != nil {
		activity.ActivityType = *req.ActivityType
	}
	if req.ActivityDate != nil {
		activity.ActivityDate = *req.ActivityDate
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.SourceURL != nil {
		activity.SourceURL = *req.SourceURL
	}

	oldThreat := activity.ThreatLevel
	if req.ThreatLevel != nil {
		activity.ThreatLevel = entity.ThreatLevel(*req.ThreatLevel)
	}

	opp := activity.Opportunity
	activity.Opportunity = nil
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		s.logger.Error("Failed to update competitor activity", logger.ErrorField(err), logger.Field("activity_id", id))
		return nil, err
	}
	activity.Opportunity = opp

	escalated := activity.ThreatLevel == entity.ThreatHigh || activity.ThreatLevel == entity.ThreatCritical
	wasEscalated := oldThreat == entity.ThreatHigh || oldThreat == entity.ThreatCritical
	if escalated && !wasEscalated {
		s.createThreatAlert(ctx, userID, activity, opp)
	}

	return activity, nil
}

func (s *competitorService) Delete(ctx context.Context, id, userID string) error {
	if err := s.activityRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete competitor activity", logger.ErrorField(err), logger.Field("activity_id", id))
		return err
	}
	return nil
}

func (s *competitorService) createThreatAlert(ctx context.Context, userID string, activity *entity.CompetitorActivity, opp *entity.Opportunity) {
	oppTitle := ""
	if opp != nil {
		oppTitle = opp.Title
	}

	priority := entity.AlertPriorityHigh
	if activity.ThreatLevel == entity.ThreatCritical {
		priority = entity.AlertPriorityCritical
	}

	alert := &entity.Alert{
		UserID:         userID,
		Type:           entity.AlertTypeCompetitor,
		Priority:       priority,
		Severity:       entity.SeverityHigh,
		Title:          fmt.Sprintf("Competitor threat: %s", activity.CompetitorName),
		Message:        fmt.Sprintf("%s: %s on %q (%s threat)", activity.CompetitorName, activity.ActivityType, oppTitle, activity.ThreatLevel),
		ActionRequired: true,
		OpportunityID:  &activity.OpportunityID,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("Failed to create competitor alert", logger.ErrorField(err), logger.Field("activity_id", activity.ID))
	}
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
