package service

import (
	"context"
	"fmt"
	"time"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/internal/scoring"
	"regintel/pkg/common"
	"regintel/pkg/logger"
	"regintel/pkg/utils"
)

// PressureBand selects a company pressure range on list queries.
type PressureBand string

const (
	PressureBandHigh   PressureBand = "high"   // >= 70
	PressureBandMedium PressureBand = "medium" // 40..69
	PressureBandLow    PressureBand = "low"    // < 40
)

// CompanyListOptions are the list filters accepted by the companies route.
type CompanyListOptions struct {
	Pressure     PressureBand
	GtmGap       bool
	FundedWithin int
	Search       string
}

// CompanyService defines the interface for managing companies.
type CompanyService interface {
	Create(ctx context.Context, userID string, req *dto.CreateCompanyRequest) (*entity.Company, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Company, error)
	List(ctx context.Context, userID string, opts CompanyListOptions) (*dto.CompanyListResponse, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateCompanyRequest) (*entity.Company, error)
	Delete(ctx context.Context, id, userID string) error
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo repository.CompanyRepository, alertRepo repository.AlertRepository, logger *logger.Logger) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		alertRepo:   alertRepo,
		logger:      logger,
	}
}

type companyService struct {
	companyRepo repository.CompanyRepository
	alertRepo   repository.AlertRepository
	logger      *logger.Logger
}

// Create stores a new company with its initial pressure score and raises a
// funding alert when the company is already under high pressure.
func (s *companyService) Create(ctx context.Context, userID string, req *dto.CreateCompanyRequest) (*entity.Company, error) {
	now := time.Now()

	company := &entity.Company{
		UserID:            userID,
		Name:              req.Name,
		Website:           req.Website,
		LinkedinURL:       req.LinkedinURL,
		Industry:          req.Industry,
		LastFundingRound:  req.LastFundingRound,
		LastFundingAmount: req.LastFundingAmount,
		LastFundingDate:   req.LastFundingDate,
		TotalFunding:      req.TotalFunding,
		GtmGapDetected:    req.GtmGapDetected,
		ExecutiveTurnover: req.ExecutiveTurnover,
		AnalysisNotes:     req.AnalysisNotes,
	}
	company.PressureScore = scoring.PressureScore(company, now)

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	// A brand-new record has no previous score, so creation counts as a
	// crossing from zero.
	if scoring.DidCrossThreshold(0, company.PressureScore, common.PressureAlertThreshold) && company.LastFundingDate != nil {
		s.createPressureAlert(ctx, company, now)
	}

	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id, userID string) (*entity.Company, error) {
	return s.companyRepo.FindByID(ctx, id, userID)
}

// List returns companies with their stats. Companies whose stored pressure
// score is still zero are scored on the fly and the result persisted, so
// older records converge without a backfill job.
func (s *companyService) List(ctx context.Context, userID string, opts CompanyListOptions) (*dto.CompanyListResponse, error) {
	companies, err := s.companyRepo.FindAll(ctx, userID, repository.CompanyFilter{
		GtmGap:       opts.GtmGap,
		FundedWithin: opts.FundedWithin,
		Search:       opts.Search,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range companies {
		if companies[i].PressureScore != 0 {
			continue
		}
		score := scoring.PressureScore(&companies[i], now)
		if score == 0 {
			continue
		}
		if err := s.companyRepo.UpdateScore(ctx, companies[i].ID, score); err != nil {
			s.logger.Error("Failed to persist pressure score", logger.ErrorField(err), logger.Field("company_id", companies[i].ID))
		}
		companies[i].PressureScore = score
	}

	filtered := companies[:0]
	for _, company := range companies {
		if matchesPressureBand(company.PressureScore, opts.Pressure) {
			filtered = append(filtered, company)
		}
	}

	stats := dto.CompanyStats{Total: len(filtered)}
	for _, company := range filtered {
		if company.LastFundingDate != nil && utils.DaysSince(*company.LastFundingDate, now) <= 90 {
			stats.WithRecentFunding++
		}
		if company.GtmGapDetected {
			stats.GtmGaps++
		}
		if company.ExecutiveTurnover {
			stats.ExecutiveTurnover++
		}
		if company.PressureScore >= common.PressureAlertThreshold {
			stats.HighPressure++
		}
		if company.TotalFunding != nil {
			stats.TotalFunding += *company.TotalFunding
		}
	}

	return &dto.CompanyListResponse{Companies: filtered, Stats: stats}, nil
}

// Update applies a partial update, recomputes the pressure score and fires
// a funding alert only when the score crosses the threshold from below.
func (s *companyService) Update(ctx context.Context, id, userID string, req *dto.UpdateCompanyRequest) (*entity.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.LinkedinURL != nil {
		company.LinkedinURL = *req.LinkedinURL
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.LastFundingRound != nil {
		company.LastFundingRound = *req.LastFundingRound
	}
	if req.LastFundingAmount != nil {
		company.LastFundingAmount = req.LastFundingAmount
	}
	if req.LastFundingDate != nil {
		company.LastFundingDate = req.LastFundingDate
	}
	if req.TotalFunding != nil {
		company.TotalFunding = req.TotalFunding
	}
	if req.GtmGapDetected != nil {
		company.GtmGapDetected = *req.GtmGapDetected
	}
	if req.ExecutiveTurnover != nil {
		company.ExecutiveTurnover = *req.ExecutiveTurnover
	}
	if req.AnalysisNotes != nil {
		company.AnalysisNotes = *req.AnalysisNotes
	}

	now := time.Now()
	oldScore := company.PressureScore
	company.PressureScore = scoring.PressureScore(company, now)

	if err := s.companyRepo.Update(ctx, company); err != nil {
		s.logger.Error("Failed to update company", logger.ErrorField(err), logger.Field("company_id", id))
		return nil, err
	}

	if scoring.DidCrossThreshold(oldScore, company.PressureScore, common.PressureAlertThreshold) {
		s.createPressureAlert(ctx, company, now)
	}

	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id, userID string) error {
	if err := s.companyRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete company", logger.ErrorField(err), logger.Field("company_id", id))
		return err
	}
	return nil
}

func (s *companyService) createPressureAlert(ctx context.Context, company *entity.Company, now time.Time) {
	message := fmt.Sprintf("%s is under high pressure (score: %d).", company.Name, company.PressureScore)
	if company.LastFundingDate != nil {
		message = fmt.Sprintf("%s raised %s %d days ago. ", company.Name, company.LastFundingRound, utils.DaysSince(*company.LastFundingDate, now))
		if company.GtmGapDetected {
			message += "GTM gap detected. "
		}
		if company.ExecutiveTurnover {
			message += "Executive turnover detected. "
		}
		message += fmt.Sprintf("Pressure score: %d", company.PressureScore)
	}

	alert := &entity.Alert{
		UserID:         company.UserID,
		Type:           entity.AlertTypeFundingRound,
		Priority:       entity.AlertPriorityHigh,
		Severity:       entity.SeverityHigh,
		Title:          fmt.Sprintf("High pressure company: %s", company.Name),
		Message:        message,
		ActionRequired: true,
		CompanyID:      &company.ID,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("Failed to create pressure alert", logger.ErrorField(err), logger.Field("company_id", company.ID))
	}
}

func matchesPressureBand(score int, band PressureBand) bool {
	switch band {
	case PressureBandHigh:
		return score >= 70
	case PressureBandMedium:
		return score >= 40 && score < 70
	case PressureBandLow:
		return score < 40
	default:
		return true
	}
}
