package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/internal/scoring"
	"regintel/pkg/common"
	"regintel/pkg/logger"
)

// ExecutiveService defines the interface for managing tracked executives.
type ExecutiveService interface {
	Create(ctx context.Context, userID string, req *dto.CreateExecutiveRequest) (*entity.Executive, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Executive, error)
	List(ctx context.Context, userID string, filter repository.ExecutiveFilter) (*dto.ExecutiveListResponse, error)
	Update(ctx context.Context, id, userID string, req *dto.UpdateExecutiveRequest) (*entity.Executive, error)
	Delete(ctx context.Context, id, userID string) error
}

// NewExecutiveService creates a new executive service.
func NewExecutiveService(executiveRepo repository.ExecutiveRepository, companyRepo repository.CompanyRepository, alertRepo repository.AlertRepository, logger *logger.Logger) ExecutiveService {
	return &executiveService{
		executiveRepo: executiveRepo,
		companyRepo:   companyRepo,
		alertRepo:     alertRepo,
		logger:        logger,
	}
}

type executiveService struct {
	executiveRepo repository.ExecutiveRepository
	companyRepo   repository.CompanyRepository
	alertRepo     repository.AlertRepository
	logger        *logger.Logger
}

// Create stores a new executive, scores it against its company context and
// keeps the parent company's pressure score in sync.
func (s *executiveService) Create(ctx context.Context, userID string, req *dto.CreateExecutiveRequest) (*entity.Executive, error) {
	company, err := s.companyRepo.FindByID(ctx, req.CompanyID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	exec := &entity.Executive{
		UserID:             userID,
		CompanyID:          company.ID,
		Name:               req.Name,
		Title:              req.Title,
		LinkedinURL:        req.LinkedinURL,
		Email:              req.Email,
		RiskFactors:        req.RiskFactors,
		DesperationSignals: req.DesperationSignals,
		LastLinkedinPost:   req.LastLinkedinPost,
		Notes:              req.Notes,
		OpportunityType:    req.OpportunityType,
	}
	exec.Company = company
	exec.VulnerabilityScore = scoring.VulnerabilityScore(exec, now)

	// Detach the association before insert so GORM does not upsert the
	// company row alongside the executive.
	exec.Company = nil
	if err := s.executiveRepo.Create(ctx, exec); err != nil {
		return nil, err
	}
	exec.Company = company

	if scoring.DidCrossThreshold(0, exec.VulnerabilityScore, common.VulnerabilityAlertThreshold) {
		s.createVulnerabilityAlert(ctx, exec, company)
	}

	s.refreshCompanyPressure(ctx, company, now)
	return exec, nil
}

func (s *executiveService) GetByID(ctx context.Context, id, userID string) (*entity.Executive, error) {
	return s.executiveRepo.FindByID(ctx, id, userID)
}

// List returns executives with aggregate stats over the filtered set.
// Executives whose stored vulnerability score is still zero are scored on
// the fly and the result persisted, so older records converge without a
// backfill job.
func (s *executiveService) List(ctx context.Context, userID string, filter repository.ExecutiveFilter) (*dto.ExecutiveListResponse, error) {
	execs, err := s.executiveRepo.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range execs {
		if execs[i].VulnerabilityScore != 0 {
			continue
		}
		score := scoring.VulnerabilityScore(&execs[i], now)
		if score == 0 {
			continue
		}
		if err := s.executiveRepo.UpdateScore(ctx, execs[i].ID, score); err != nil {
			s.logger.Error("Failed to persist vulnerability score", logger.ErrorField(err), logger.Field("executive_id", execs[i].ID))
		}
		execs[i].VulnerabilityScore = score
	}

	stats := dto.ExecutiveStats{
		Total:             len(execs),
		TitleDistribution: make(map[string]int),
	}
	factorCounts := make(map[string]int)
	for _, exec := range execs {
		if exec.VulnerabilityScore >= common.VulnerabilityAlertThreshold {
			stats.HighVulnerability++
		}
		if len(exec.DesperationSignals) > 0 {
			stats.WithDesperationSignals++
		}
		stats.TitleDistribution[exec.Title]++
		for _, factor := range exec.RiskFactors {
			factorCounts[factor]++
		}
	}

	for factor, count := range factorCounts {
		stats.TopRiskFactors = append(stats.TopRiskFactors, dto.RiskFactorCount{Factor: factor, Count: count})
	}
	sort.Slice(stats.TopRiskFactors, func(i, j int) bool {
		if stats.TopRiskFactors[i].Count != stats.TopRiskFactors[j].Count {
			return stats.TopRiskFactors[i].Count > stats.TopRiskFactors[j].Count
		}
		return stats.TopRiskFactors[i].Factor < stats.TopRiskFactors[j].Factor
	})
	if len(stats.TopRiskFactors) > 5 {
		stats.TopRiskFactors = stats.TopRiskFactors[:5]
	}

	return &dto.ExecutiveListResponse{Executives: execs, Stats: stats}, nil
}

// Update applies a partial update, rescores the executive and raises an
// alert when the vulnerability crosses the threshold from below.
func (s *executiveService) Update(ctx context.Context, id, userID string, req *dto.UpdateExecutiveRequest) (*entity.Executive, error) {
	exec, err := s.executiveRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		exec.Name = *req.Name
	}
	if req.Title != nil {
		exec.Title = *req.Title
	}
	if req.LinkedinURL != nil {
		exec.LinkedinURL = *req.LinkedinURL
	}
	if req.Email != nil {
		exec.Email = *req.Email
	}
	if req.RiskFactors != nil {
		exec.RiskFactors = req.RiskFactors
	}
	if req.DesperationSignals != nil {
		exec.DesperationSignals = req.DesperationSignals
	}
	if req.LastLinkedinPost != nil {
		exec.LastLinkedinPost = req.LastLinkedinPost
	}
	if req.Notes != nil {
		exec.Notes = *req.Notes
	}
	if req.OpportunityType != nil {
		exec.OpportunityType = *req.OpportunityType
	}

	now := time.Now()
	oldScore := exec.VulnerabilityScore
	exec.VulnerabilityScore = scoring.VulnerabilityScore(exec, now)

	// Save the scalar columns only; saving with associations loaded would
	// cascade into company and alert rows.
	company := exec.Company
	exec.Company = nil
	exec.Alerts = nil
	if err := s.executiveRepo.Update(ctx, exec); err != nil {
		s.logger.Error("Failed to update executive", logger.ErrorField(err), logger.Field("executive_id", id))
		return nil, err
	}
	exec.Company = company

	if scoring.DidCrossThreshold(oldScore, exec.VulnerabilityScore, common.VulnerabilityAlertThreshold) {
		s.createVulnerabilityAlert(ctx, exec, company)
	}

	if company != nil {
		s.refreshCompanyPressure(ctx, company, now)
	}
	return exec, nil
}

func (s *executiveService) Delete(ctx context.Context, id, userID string) error {
	exec, err := s.executiveRepo.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.executiveRepo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("Failed to delete executive", logger.ErrorField(err), logger.Field("executive_id", id))
		return err
	}
	if exec.Company != nil {
		s.refreshCompanyPressure(ctx, exec.Company, time.Now())
	}
	return nil
}

// refreshCompanyPressure recomputes the parent company's pressure score from
// its current executive roster. Pressure includes a share of the top
// executive's vulnerability, so roster changes move it.
func (s *executiveService) refreshCompanyPressure(ctx context.Context, company *entity.Company, now time.Time) {
	execs, err := s.executiveRepo.FindByCompany(ctx, company.ID)
	if err != nil {
		s.logger.Error("Failed to load executives for pressure refresh", logger.ErrorField(err), logger.Field("company_id", company.ID))
		return
	}
	company.Executives = execs
	score := scoring.PressureScore(company, now)
	if score == company.PressureScore {
		return
	}
	if err := s.companyRepo.UpdateScore(ctx, company.ID, score); err != nil {
		s.logger.Error("Failed to persist pressure score", logger.ErrorField(err), logger.Field("company_id", company.ID))
		return
	}
	company.PressureScore = score
}

func (s *executiveService) createVulnerabilityAlert(ctx context.Context, exec *entity.Executive, company *entity.Company) {
	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	message := fmt.Sprintf("%s (%s) at %s has a vulnerability score of %d.", exec.Name, exec.Title, companyName, exec.VulnerabilityScore)
	if len(exec.RiskFactors) > 0 {
		message += fmt.Sprintf(" Risk factors: %d.", len(exec.RiskFactors))
	}
	if len(exec.DesperationSignals) > 0 {
		message += fmt.Sprintf(" Desperation signals: %d.", len(exec.DesperationSignals))
	}

	alert := &entity.Alert{
		UserID:         exec.UserID,
		Type:           entity.AlertTypeExecutiveMovement,
		Priority:       entity.AlertPriorityHigh,
		Severity:       entity.SeverityHigh,
		Title:          fmt.Sprintf("Vulnerable executive: %s", exec.Name),
		Message:        message,
		ActionRequired: true,
		ExecutiveID:    &exec.ID,
		CompanyID:      &exec.CompanyID,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("Failed to create vulnerability alert", logger.ErrorField(err), logger.Field("executive_id", exec.ID))
	}
}
