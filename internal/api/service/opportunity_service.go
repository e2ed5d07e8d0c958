package service

import (
	"context"
	"time"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/internal/scoring"
	"regintel/pkg/logger"
)

// OpportunityService defines the interface for managing regulatory
// opportunities.
type OpportunityService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOpportunityRequest) (*entity.Opportunity, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Opportunity, error)
	List(ctx context.Context, userID string, filter repository.OpportunityFilter) ([]entity.Opportunity, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateOpportunityRequest) (*entity.Opportunity, error)
	Delete(ctx context.Context, id, userID string) error
}

// NewOpportunityService creates a new opportunity service.
func NewOpportunityService(opportunityRepo repository.OpportunityRepository, logger *logger.Logger) OpportunityService {
	return &opportunityService{
		opportunityRepo: opportunityRepo,
		logger:          logger,
	}
}

type opportunityService struct {
	opportunityRepo repository.OpportunityRepository
	logger          *logger.Logger
}

// Create stores a new opportunity with its derived lead time and score.
func (s *opportunityService) Create(ctx context.Context, userID string, req *dto.CreateOpportunityRequest) (*entity.Opportunity, error) {
	now := time.Now()

	opp := &entity.Opportunity{
		UserID:                 userID,
		Title:                  req.Title,
		Description:            req.Description,
		RegulationType:         req.RegulationType,
		RegulationReference:    req.RegulationReference,
		ImplementationDate:     req.ImplementationDate,
		DeadlineDate:           req.DeadlineDate,
		LegislativeStage:       req.LegislativeStage,
		TargetIndustries:       req.TargetIndustries,
		AffectedCountries:      req.AffectedCountries,
		EstimatedMarketSize:    req.EstimatedMarketSize,
		ComplianceRequirements: req.ComplianceRequirements,
		Status:                 entity.OpportunityStatusIdentified,
		Priority:               entity.PriorityMedium,
		RevenuePotential:       entity.LevelMedium,
		MarketGap:              entity.LevelMedium,
		CompetitionLevel:       entity.CompetitionMedium,
	}
	if req.LegislativeStage != "" {
		opp.LastLegislativeUpdate = &now
	}
	opp.LeadTimeMonths = scoring.LeadTimeMonths(opp.ImplementationDate, now)
	opp.OpportunityScore = scoring.OpportunityScore(opp)

	if err := s.opportunityRepo.Create(ctx, opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *opportunityService) GetByID(ctx context.Context, id, userID string) (*entity.Opportunity, error) {
	return s.opportunityRepo.FindByID(ctx, id, userID)
}

// List returns the filtered opportunities. Records whose stored score is
// still zero are scored on the fly and the result persisted, so older rows
// converge without a backfill job.
func (s *opportunityService) List(ctx context.Context, userID string, filter repository.OpportunityFilter) ([]entity.Opportunity, error) {
	opps, err := s.opportunityRepo.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	for i := range opps {
		if opps[i].OpportunityScore != 0 {
			continue
		}
		score := scoring.OpportunityScore(&opps[i])
		if err := s.opportunityRepo.UpdateScore(ctx, opps[i].ID, score); err != nil {
			s.logger.Error("Failed to persist opportunity score", logger.ErrorField(err), logger.Field("opportunity_id", opps[i].ID))
		}
		opps[i].OpportunityScore = score
	}
	return opps, nil
}

// Update applies a partial update and rescores the opportunity. Changing the
// legislative stage also stamps the last legislative update.
func (s *opportunityService) Update(ctx context.Context, id, userID string, req *dto.UpdateOpportunityRequest) (*entity.Opportunity, error) {
	opp, err := s.opportunityRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if req.Title != nil {
		opp.Title = *req.Title
	}
	if req.Description != nil {
		opp.Description = *req.Description
	}
	if req.RegulationType != nil {
		opp.RegulationType = *req.RegulationType
	}
	if req.RegulationReference != nil {
		opp.RegulationReference = *req.RegulationReference
	}
	if req.ImplementationDate != nil {
		opp.ImplementationDate = req.ImplementationDate
	}
	if req.DeadlineDate != nil {
		opp.DeadlineDate = req.DeadlineDate
	}
	if req.Status != nil {
		opp.Status = entity.OpportunityStatus(*req.Status)
	}
	if req.Priority != nil {
		opp.Priority = entity.OpportunityPriority(*req.Priority)
	}
	if req.RevenuePotential != nil {
		opp.RevenuePotential = entity.OrdinalLevel(*req.RevenuePotential)
	}
	if req.MarketGap != nil {
		opp.MarketGap = entity.OrdinalLevel(*req.MarketGap)
	}
	if req.CompetitionLevel != nil {
		opp.CompetitionLevel = entity.CompetitionLevel(*req.CompetitionLevel)
	}
	if req.LegislativeStage != nil && *req.LegislativeStage != opp.LegislativeStage {
		opp.LegislativeStage = *req.LegislativeStage
		opp.LastLegislativeUpdate = &now
	}
	if req.TargetIndustries != nil {
		opp.TargetIndustries = req.TargetIndustries
	}
	if req.AffectedCountries != nil {
		opp.AffectedCountries = req.AffectedCountries
	}
	if req.EstimatedMarketSize != nil {
		opp.EstimatedMarketSize = req.EstimatedMarketSize
	}
	if req.ComplianceRequirements != nil {
		opp.ComplianceRequirements = *req.ComplianceRequirements
	}

	opp.LeadTimeMonths = scoring.LeadTimeMonths(opp.ImplementationDate, now)
	opp.OpportunityScore = scoring.OpportunityScore(opp)

	// Save scalar columns only; the loaded children must not be cascaded.
	children := *opp
	opp.Competitors = nil
	opp.Notes = nil
	opp.Documents = nil
	opp.GovernmentContacts = nil
	opp.ResearchTasks = nil
	opp.Alerts = nil
	if err := s.opportunityRepo.Update(ctx, opp); err != nil {
		s.logger.Error("Failed to update opportunity", logger.ErrorField(err), logger.Field("opportunity_id", id))
		return nil, err
	}
	opp.Competitors = children.Competitors
	opp.Notes = children.Notes
	opp.Documents = children.Documents
	opp.GovernmentContacts = children.GovernmentContacts
	opp.ResearchTasks = children.ResearchTasks
	opp.Alerts = children.Alerts

	return opp, nil
}

func (s *opportunityService) Delete(ctx context.Context, id, userID string) error {
	if err := s.opportunityRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete opportunity", logger.ErrorField(err), logger.Field("opportunity_id", id))
		return err
	}
	return nil
}
