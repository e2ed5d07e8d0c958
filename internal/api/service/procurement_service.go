package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/logger"
	"regintel/pkg/utils"
)

// ProcurementService defines the interface for managing government tenders.
type ProcurementService interface {
	Create(ctx context.Context, userID string, req *dto.CreateProcurementRequest) (*entity.Procurement, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Procurement, error)
	List(ctx context.Context, userID string, filter repository.ProcurementFilter) (*dto.ProcurementListResponse, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateProcurementRequest) (*entity.Procurement, error)
	Delete(ctx context.Context, id, userID string) error
}

// NewProcurementService creates a new procurement service.
func NewProcurementService(procurementRepo repository.ProcurementRepository, alertRepo repository.AlertRepository, logger *logger.Logger) ProcurementService {
	return &procurementService{
		procurementRepo: procurementRepo,
		alertRepo:       alertRepo,
		logger:          logger,
	}
}

type procurementService struct {
	procurementRepo repository.ProcurementRepository
	alertRepo       repository.AlertRepository
	logger          *logger.Logger
}

// Create stores a new tender. Deadlines inside 30 days raise a match alert,
// and a detected service gap or bottleneck raises a market signal.
func (s *procurementService) Create(ctx context.Context, userID string, req *dto.CreateProcurementRequest) (*entity.Procurement, error) {
	proc := &entity.Procurement{
		UserID:             userID,
		Title:              req.Title,
		Description:        req.Description,
		ProcurementNumber:  req.ProcurementNumber,
		Region:             req.Region,
		IssuingAuthority:   req.IssuingAuthority,
		PublishDate:        req.PublishDate,
		SubmissionDeadline: req.SubmissionDeadline,
		EstimatedValue:     req.EstimatedValue,
		Currency:           req.Currency,
		Status:             entity.ProcurementStatus(req.Status),
		ServiceGap:         req.ServiceGap,
		Bottleneck:         req.Bottleneck,
		GapAnalysis:        req.GapAnalysis,
		ProposalDraft:      req.ProposalDraft,
		WinProbability:     req.WinProbability,
	}
	if proc.Status == "" {
		proc.Status = entity.ProcurementStatusOpen
	}

	if err := s.procurementRepo.Create(ctx, proc); err != nil {
		return nil, err
	}

	now := time.Now()
	if proc.SubmissionDeadline != nil && proc.Status == entity.ProcurementStatusOpen {
		days := utils.DaysUntil(*proc.SubmissionDeadline, now)
		if days >= 0 && days <= 30 {
			s.createDeadlineAlert(ctx, proc, days)
		}
	}
	if proc.ServiceGap || proc.Bottleneck {
		s.createGapAlert(ctx, proc)
	}

	return proc, nil
}

func (s *procurementService) GetByID(ctx context.Context, id, userID string) (*entity.Procurement, error) {
	return s.procurementRepo.FindByID(ctx, id, userID)
}

// List returns tenders with aggregate stats and a per-region rollup.
func (s *procurementService) List(ctx context.Context, userID string, filter repository.ProcurementFilter) (*dto.ProcurementListResponse, error) {
	procs, err := s.procurementRepo.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := dto.ProcurementStats{Total: len(procs)}
	regions := make(map[string]*dto.RegionSummary)
	for _, proc := range procs {
		open := proc.Status == entity.ProcurementStatusOpen
		if open {
			stats.Open++
		}
		if proc.EstimatedValue != nil {
			stats.TotalValue += *proc.EstimatedValue
		}
		if proc.ServiceGap {
			stats.ServiceGaps++
		}
		if proc.Bottleneck {
			stats.Bottlenecks++
		}
		if open && proc.SubmissionDeadline != nil {
			days := utils.DaysUntil(*proc.SubmissionDeadline, now)
			if days >= 0 && days <= 30 {
				stats.UpcomingDeadlines++
			}
		}

		region, ok := regions[proc.Region]
		if !ok {
			region = &dto.RegionSummary{Region: proc.Region}
			regions[proc.Region] = region
		}
		region.Count++
		if proc.EstimatedValue != nil {
			region.Value += *proc.EstimatedValue
		}
		if open {
			region.Open++
		}
		if proc.ServiceGap {
			region.ServiceGaps++
		}
	}

	regionSummary := make([]dto.RegionSummary, 0, len(regions))
	for _, region := range regions {
		regionSummary = append(regionSummary, *region)
	}
	sort.Slice(regionSummary, func(i, j int) bool {
		if regionSummary[i].Count != regionSummary[j].Count {
			return regionSummary[i].Count > regionSummary[j].Count
		}
		return regionSummary[i].Region < regionSummary[j].Region
	})

	return &dto.ProcurementListResponse{
		Procurements:  procs,
		Stats:         stats,
		RegionSummary: regionSummary,
	}, nil
}

func (s *procurementService) Update(ctx context.Context, id, userID string, req *dto.UpdateProcurementRequest) (*entity.Procurement, error) {
	proc, err := s.procurementRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	hadGap := proc.ServiceGap || proc.Bottleneck

	if req.Title != nil {
		proc.Title = *req.Title
	}
	if req.Description != nil {
		proc.Description = *req.Description
	}
	if req.ProcurementNumber != nil {
		proc.ProcurementNumber = *req.ProcurementNumber
	}
	if req.Region != nil {
		proc.Region = *req.Region
	}
	if req.IssuingAuthority != nil {
		proc.IssuingAuthority = *req.IssuingAuthority
	}
	if req.PublishDate != nil {
		proc.PublishDate = *req.PublishDate
	}
	if req.SubmissionDeadline != nil {
		proc.SubmissionDeadline = req.SubmissionDeadline
	}
	if req.EstimatedValue != nil {
		proc.EstimatedValue = req.EstimatedValue
	}
	if req.Currency != nil {
		proc.Currency = *req.Currency
	}
	if req.Status != nil {
		proc.Status = entity.ProcurementStatus(*req.Status)
	}
	if req.ServiceGap != nil {
		proc.ServiceGap = *req.ServiceGap
	}
	if req.Bottleneck != nil {
		proc.Bottleneck = *req.Bottleneck
	}
	if req.GapAnalysis != nil {
		proc.GapAnalysis = *req.GapAnalysis
	}
	if req.ProposalDraft != nil {
		proc.ProposalDraft = *req.ProposalDraft
	}
	if req.WinProbability != nil {
		proc.WinProbability = req.WinProbability
	}

	contacts, documents := proc.Contacts, proc.Documents
	proc.Contacts = nil
	proc.Documents = nil
	if err := s.procurementRepo.Update(ctx, proc); err != nil {
		s.logger.Error("Failed to update procurement", logger.ErrorField(err), logger.Field("procurement_id", id))
		return nil, err
	}
	proc.Contacts = contacts
	proc.Documents = documents

	if (proc.ServiceGap || proc.Bottleneck) && !hadGap {
		s.createGapAlert(ctx, proc)
	}

	return proc, nil
}

func (s *procurementService) Delete(ctx context.Context, id, userID string) error {
	if err := s.procurementRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete procurement", logger.ErrorField(err), logger.Field("procurement_id", id))
		return err
	}
	return nil
}

func (s *procurementService) createDeadlineAlert(ctx context.Context, proc *entity.Procurement, daysUntil int) {
	priority := entity.AlertPriorityMedium
	severity := entity.SeverityMedium
	if daysUntil <= 7 {
		priority = entity.AlertPriorityHigh
		severity = entity.SeverityHigh
	}

	alert := &entity.Alert{
		UserID:         proc.UserID,
		Type:           entity.AlertTypeProcurementMatch,
		Priority:       priority,
		Severity:       severity,
		Title:          fmt.Sprintf("Tender deadline in %d days: %s", daysUntil, proc.Title),
		Message:        fmt.Sprintf("%s (%s) closes for submissions in %d days.", proc.Title, proc.Region, daysUntil),
		ActionRequired: daysUntil <= 7,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("Failed to create deadline alert", logger.ErrorField(err), logger.Field("procurement_id", proc.ID))
	}
}

func (s *procurementService) createGapAlert(ctx context.Context, proc *entity.Procurement) {
	signal := "service gap"
	if !proc.ServiceGap && proc.Bottleneck {
		signal = "bottleneck"
	}

	alert := &entity.Alert{
		UserID:   proc.UserID,
		Type:     entity.AlertTypeMarketSignal,
		Priority: entity.AlertPriorityMedium,
		Severity: entity.SeverityMedium,
		Title:    fmt.Sprintf("Market signal: %s in %s", signal, proc.Region),
		Message:  fmt.Sprintf("%s flagged with a %s. Issuing authority: %s.", proc.Title, signal, proc.IssuingAuthority),
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("Failed to create market signal alert", logger.ErrorField(err), logger.Field("procurement_id", proc.ID))
	}
}
