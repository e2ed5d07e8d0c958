package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/common"
	"regintel/pkg/logger"
	"regintel/pkg/utils"
)

const (
	briefingWindowLookback = 24 * time.Hour
	briefingForwardDays    = 14

	briefingMaxOpportunities = 5
	briefingMaxActivities    = 10
	briefingMaxDeadlines     = 5
	briefingMaxExecutives    = 10
	briefingMaxCompanies     = 5
	briefingMaxActionItems   = 10

	briefingMinExecVulnerability = 60

	briefingCacheTTL = time.Hour
)

// BriefingService defines the interface for generating and reading the
// daily intelligence briefing.
type BriefingService interface {
	Generate(ctx context.Context, userID string, date time.Time) (*dto.Briefing, error)
	Get(ctx context.Context, userID string, date time.Time) (*dto.Briefing, error)
}

// NewBriefingService creates a new briefing service.
func NewBriefingService(
	opportunityRepo repository.OpportunityRepository,
	activityRepo repository.CompetitorActivityRepository,
	procurementRepo repository.ProcurementRepository,
	executiveRepo repository.ExecutiveRepository,
	alertRepo repository.AlertRepository,
	companyRepo repository.CompanyRepository,
	reportRepo repository.ReportRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) BriefingService {
	return &briefingService{
		opportunityRepo: opportunityRepo,
		activityRepo:    activityRepo,
		procurementRepo: procurementRepo,
		executiveRepo:   executiveRepo,
		alertRepo:       alertRepo,
		companyRepo:     companyRepo,
		reportRepo:      reportRepo,
		redisClient:     redisClient,
		logger:          logger,
	}
}

type briefingService struct {
	opportunityRepo repository.OpportunityRepository
	activityRepo    repository.CompetitorActivityRepository
	procurementRepo repository.ProcurementRepository
	executiveRepo   repository.ExecutiveRepository
	alertRepo       repository.AlertRepository
	companyRepo     repository.CompanyRepository
	reportRepo      repository.ReportRepository
	redisClient     *redis.Client
	logger          *logger.Logger
}

// briefingSources holds the raw fetch results the briefing is built from.
type briefingSources struct {
	opportunities []entity.Opportunity
	activities    []entity.CompetitorActivity
	procurements  []entity.Procurement
	executives    []entity.Executive
	alerts        []entity.Alert
	companies     []entity.Company
}

// Generate builds the briefing for the given day, persists it as a report
// and caches it. Regenerating replaces the stored briefing for that day.
func (s *briefingService) Generate(ctx context.Context, userID string, date time.Time) (*dto.Briefing, error) {
	dayStart := utils.StartOfDay(date)
	dayEnd := utils.EndOfDay(date)
	windowStart := dayStart.Add(-briefingWindowLookback)
	forwardEnd := dayStart.AddDate(0, 0, briefingForwardDays)

	sources, err := s.fetchSources(ctx, userID, windowStart, dayEnd, dayStart, forwardEnd)
	if err != nil {
		return nil, err
	}

	briefing := s.assemble(userID, dayStart, sources)

	if err := s.persist(ctx, userID, dayStart, dayEnd, briefing); err != nil {
		return nil, err
	}
	s.cache(ctx, userID, dayStart, briefing)

	return briefing, nil
}

// Get returns the stored briefing for the day, or nil when none has been
// generated yet. Generation only happens through Generate.
func (s *briefingService) Get(ctx context.Context, userID string, date time.Time) (*dto.Briefing, error) {
	dayStart := utils.StartOfDay(date)
	dayEnd := utils.EndOfDay(date)

	if cached := s.fromCache(ctx, userID, dayStart); cached != nil {
		return cached, nil
	}

	report, err := s.reportRepo.FindDailyBriefing(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if report != nil {
		var briefing dto.Briefing
		if err := json.Unmarshal(report.Content, &briefing); err != nil {
			return nil, err
		}
		s.cache(ctx, userID, dayStart, &briefing)
		return &briefing, nil
	}

	return nil, nil
}

// fetchSources runs the six source queries concurrently. Any failure fails
// the briefing as a whole.
func (s *briefingService) fetchSources(ctx context.Context, userID string, windowStart, windowEnd, forwardStart, forwardEnd time.Time) (*briefingSources, error) {
	var (
		sources briefingSources
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)

	fetch := func(fn func() error) {
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}

	fetch(func() error {
		opps, err := s.opportunityRepo.FindCreatedBetween(ctx, userID, windowStart, windowEnd, briefingMaxOpportunities)
		if err != nil {
			return fmt.Errorf("fetch opportunities: %w", err)
		}
		sources.opportunities = opps
		return nil
	})
	fetch(func() error {
		activities, err := s.activityRepo.FindByActivityDateBetween(ctx, userID, windowStart, windowEnd, briefingMaxActivities)
		if err != nil {
			return fmt.Errorf("fetch competitor activities: %w", err)
		}
		sources.activities = activities
		return nil
	})
	fetch(func() error {
		procs, err := s.procurementRepo.FindOpenWithDeadlineBetween(ctx, userID, forwardStart, forwardEnd, briefingMaxDeadlines)
		if err != nil {
			return fmt.Errorf("fetch procurement deadlines: %w", err)
		}
		sources.procurements = procs
		return nil
	})
	fetch(func() error {
		execs, err := s.executiveRepo.FindVulnerableUpdatedBetween(ctx, userID, windowStart, windowEnd, briefingMinExecVulnerability, briefingMaxExecutives)
		if err != nil {
			return fmt.Errorf("fetch vulnerable executives: %w", err)
		}
		sources.executives = execs
		return nil
	})
	fetch(func() error {
		alerts, err := s.alertRepo.FindUnreadCreatedBetween(ctx, userID, windowStart, windowEnd)
		if err != nil {
			return fmt.Errorf("fetch alerts: %w", err)
		}
		sources.alerts = alerts
		return nil
	})
	fetch(func() error {
		companies, err := s.companyRepo.FindUnderPressure(ctx, userID, common.PressureAlertThreshold, briefingMinExecVulnerability, briefingMaxCompanies)
		if err != nil {
			return fmt.Errorf("fetch companies under pressure: %w", err)
		}
		sources.companies = companies
		return nil
	})

	wg.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &sources, nil
}

// assemble turns the raw sources into the briefing document.
func (s *briefingService) assemble(userID string, dayStart time.Time, sources *briefingSources) *dto.Briefing {
	now := time.Now()

	opportunities := make([]dto.BriefingOpportunity, 0, len(sources.opportunities))
	for _, opp := range sources.opportunities {
		opportunities = append(opportunities, dto.BriefingOpportunity{
			ID:                  opp.ID,
			Title:               opp.Title,
			Description:         opp.Description,
			OpportunityScore:    opp.OpportunityScore,
			RevenuePotential:    string(opp.RevenuePotential),
			EstimatedMarketSize: opp.EstimatedMarketSize,
		})
	}

	highThreats := 0
	activities := make([]dto.BriefingCompetitorActivity, 0, len(sources.activities))
	for _, activity := range sources.activities {
		if activity.ThreatLevel == entity.ThreatHigh || activity.ThreatLevel == entity.ThreatCritical {
			highThreats++
		}
		activities = append(activities, dto.BriefingCompetitorActivity{
			ID:             activity.ID,
			CompetitorName: activity.CompetitorName,
			ActivityType:   activity.ActivityType,
			Description:    activity.Description,
			ThreatLevel:    string(activity.ThreatLevel),
		})
	}

	deadlines := make([]dto.BriefingDeadline, 0, len(sources.procurements))
	for _, proc := range sources.procurements {
		daysUntil := 0
		if proc.SubmissionDeadline != nil {
			daysUntil = utils.DaysUntil(*proc.SubmissionDeadline, now)
		}
		deadlines = append(deadlines, dto.BriefingDeadline{
			ID:             proc.ID,
			Title:          proc.Title,
			Region:         proc.Region,
			EstimatedValue: proc.EstimatedValue,
			DaysUntil:      daysUntil,
		})
	}

	execAlerts := make([]dto.BriefingExecutiveAlert, 0, len(sources.executives))
	for _, exec := range sources.executives {
		companyName := ""
		if exec.Company != nil {
			companyName = exec.Company.Name
		}
		// Score history is not tracked yet, so the delta is a fixed
		// placeholder until snapshots land.
		execAlerts = append(execAlerts, dto.BriefingExecutiveAlert{
			ID:                 exec.ID,
			ExecutiveName:      exec.Name,
			Title:              exec.Title,
			CompanyName:        companyName,
			VulnerabilityScore: exec.VulnerabilityScore,
			ChangeType:         "increase",
			ChangeAmount:       5,
		})
	}

	highSeverityAlerts := 0
	for _, alert := range sources.alerts {
		if alert.Severity == entity.SeverityHigh {
			highSeverityAlerts++
		}
	}

	stats := dto.BriefingStats{
		NewOpportunities:     len(opportunities),
		CompetitorActivities: len(activities),
		GovernmentUpdates:    len(deadlines),
		ExecutiveAlerts:      len(execAlerts),
		TotalAlerts:          len(sources.alerts),
		HighPriorityItems:    highSeverityAlerts,
	}

	combinedMarketSize := 0.0
	for _, opp := range sources.opportunities {
		if opp.EstimatedMarketSize != nil {
			combinedMarketSize += *opp.EstimatedMarketSize
		}
	}

	return &dto.Briefing{
		Date:                 dayStart.Format("2006-01-02"),
		Stats:                stats,
		ExecutiveSummary:     buildExecutiveSummary(stats, highThreats, combinedMarketSize, sources.companies),
		Opportunities:        opportunities,
		CompetitorActivities: activities,
		UpcomingDeadlines:    deadlines,
		ExecutiveAlerts:      execAlerts,
		ActionItems:          buildActionItems(sources, now),
		GeneratedAt:          now,
	}
}

// buildExecutiveSummary composes the narrative opening of the briefing. An
// empty day falls back to a standing guidance sentence.
func buildExecutiveSummary(stats dto.BriefingStats, highThreats int, combinedMarketSize float64, companies []entity.Company) string {
	var parts []string

	if stats.NewOpportunities > 0 {
		sentence := fmt.Sprintf("%d new regulatory opportunities identified", stats.NewOpportunities)
		if combinedMarketSize > 0 {
			sentence += fmt.Sprintf(" with a combined market size of %s", formatEuros(combinedMarketSize))
		}
		parts = append(parts, sentence+".")
	}
	if stats.CompetitorActivities > 0 {
		sentence := fmt.Sprintf("%d competitor activities tracked", stats.CompetitorActivities)
		if highThreats > 0 {
			sentence += fmt.Sprintf(" (%d high threat)", highThreats)
		}
		parts = append(parts, sentence+".")
	}
	if stats.GovernmentUpdates > 0 {
		parts = append(parts, fmt.Sprintf("%d tender deadlines in the next %d days.", stats.GovernmentUpdates, briefingForwardDays))
	}
	if stats.ExecutiveAlerts > 0 {
		parts = append(parts, fmt.Sprintf("%d executives show elevated vulnerability.", stats.ExecutiveAlerts))
	}
	if len(companies) > 0 {
		parts = append(parts, fmt.Sprintf("%d companies are under high pressure.", len(companies)))
	}
	if stats.TotalAlerts > 0 {
		parts = append(parts, fmt.Sprintf("%d unread alerts require review.", stats.TotalAlerts))
	}

	if len(parts) == 0 {
		return "No significant activities or alerts today. Continue monitoring for new opportunities."
	}

	summary := parts[0]
	for _, part := range parts[1:] {
		summary += " " + part
	}
	return summary
}

// formatEuros renders an amount in compact euro notation (€2.5M, €450k).
func formatEuros(amount float64) string {
	switch {
	case amount >= 1_000_000:
		millions := amount / 1_000_000
		if millions == math.Trunc(millions) {
			return fmt.Sprintf("€%.0fM", millions)
		}
		return fmt.Sprintf("€%.1fM", millions)
	case amount >= 1_000:
		return fmt.Sprintf("€%.0fk", amount/1_000)
	default:
		return fmt.Sprintf("€%.0f", amount)
	}
}

// buildActionItems ranks the most urgent follow-ups, capped at ten.
func buildActionItems(sources *briefingSources, now time.Time) []dto.ActionItem {
	var items []dto.ActionItem

	for _, opp := range sources.opportunities {
		if opp.OpportunityScore >= 80 {
			description := fmt.Sprintf("Scored %d. Assess positioning and next steps.", opp.OpportunityScore)
			if opp.EstimatedMarketSize != nil && *opp.EstimatedMarketSize > 0 {
				description = fmt.Sprintf("Scored %d with a %s market. Assess positioning and next steps.", opp.OpportunityScore, formatEuros(*opp.EstimatedMarketSize))
			}
			items = append(items, dto.ActionItem{
				Priority:    "high",
				Title:       fmt.Sprintf("Review opportunity: %s", opp.Title),
				Description: description,
			})
		}
	}

	for _, proc := range sources.procurements {
		if proc.SubmissionDeadline == nil {
			continue
		}
		days := utils.DaysUntil(*proc.SubmissionDeadline, now)
		if days <= 7 {
			description := fmt.Sprintf("Submission deadline in %d days (%s).", days, proc.Region)
			if proc.EstimatedValue != nil && *proc.EstimatedValue > 0 {
				description = fmt.Sprintf("Submission deadline in %d days (%s), %s value.", days, proc.Region, formatEuros(*proc.EstimatedValue))
			}
			items = append(items, dto.ActionItem{
				Priority:    "high",
				Title:       fmt.Sprintf("Tender closing soon: %s", proc.Title),
				Description: description,
			})
		}
	}

	execItems := 0
	for _, exec := range sources.executives {
		if exec.VulnerabilityScore < 80 || execItems >= 3 {
			continue
		}
		companyName := ""
		if exec.Company != nil {
			companyName = exec.Company.Name
		}
		items = append(items, dto.ActionItem{
			Priority:    "medium",
			Title:       fmt.Sprintf("Reach out to %s", exec.Name),
			Description: fmt.Sprintf("%s at %s, vulnerability score %d.", exec.Title, companyName, exec.VulnerabilityScore),
		})
		execItems++
	}

	alertItems := 0
	for _, alert := range sources.alerts {
		if alert.Severity != entity.SeverityHigh || alertItems >= 5 {
			continue
		}
		items = append(items, dto.ActionItem{
			Priority:    "high",
			Title:       alert.Title,
			Description: alert.Message,
		})
		alertItems++
	}

	if len(items) > briefingMaxActionItems {
		items = items[:briefingMaxActionItems]
	}
	return items
}

func (s *briefingService) persist(ctx context.Context, userID string, dayStart, dayEnd time.Time, briefing *dto.Briefing) error {
	content, err := json.Marshal(briefing)
	if err != nil {
		return err
	}
	report := &entity.Report{
		UserID:  userID,
		Type:    common.ReportTypeDailyBriefing,
		Title:   fmt.Sprintf("Daily Briefing - %s", briefing.Date),
		Content: content,
	}
	return s.reportRepo.SaveDailyBriefing(ctx, report, dayStart, dayEnd)
}

func (s *briefingService) cacheKey(userID string, dayStart time.Time) string {
	return common.RedisKeyBriefingPrefix + userID + ":" + dayStart.Format("2006-01-02")
}

func (s *briefingService) cache(ctx context.Context, userID string, dayStart time.Time, briefing *dto.Briefing) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(briefing)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, s.cacheKey(userID, dayStart), payload, briefingCacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to cache briefing", logger.ErrorField(err))
	}
}

func (s *briefingService) fromCache(ctx context.Context, userID string, dayStart time.Time) *dto.Briefing {
	if s.redisClient == nil {
		return nil
	}
	payload, err := s.redisClient.Get(ctx, s.cacheKey(userID, dayStart)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Failed to read briefing cache", logger.ErrorField(err))
		}
		return nil
	}
	var briefing dto.Briefing
	if err := json.Unmarshal(payload, &briefing); err != nil {
		return nil
	}
	return &briefing
}
