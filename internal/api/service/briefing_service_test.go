package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regintel/internal/entity"
	"regintel/pkg/common"
)

func newBriefingFixture() (*fakeOpportunityRepo, *fakeActivityRepo, *fakeProcurementRepo, *fakeExecutiveRepo, *fakeAlertRepo, *fakeCompanyRepo, *fakeReportRepo, BriefingService) {
	oppRepo := newFakeOpportunityRepo()
	activityRepo := &fakeActivityRepo{}
	procRepo := &fakeProcurementRepo{}
	execRepo := newFakeExecutiveRepo()
	alertRepo := &fakeAlertRepo{}
	companyRepo := newFakeCompanyRepo()
	reportRepo := &fakeReportRepo{}

	svc := NewBriefingService(oppRepo, activityRepo, procRepo, execRepo, alertRepo, companyRepo, reportRepo, nil, testLogger())
	return oppRepo, activityRepo, procRepo, execRepo, alertRepo, companyRepo, reportRepo, svc
}

func TestBriefingGenerate_EmptyDay(t *testing.T) {
	_, _, _, _, _, _, reportRepo, svc := newBriefingFixture()

	date := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	briefing, err := svc.Generate(context.Background(), "user-1", date)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14", briefing.Date)
	assert.Equal(t, "No significant activities or alerts today. Continue monitoring for new opportunities.", briefing.ExecutiveSummary)
	assert.Zero(t, briefing.Stats.NewOpportunities)
	assert.Zero(t, briefing.Stats.TotalAlerts)
	assert.Empty(t, briefing.ActionItems)

	require.NotNil(t, reportRepo.saved)
	assert.Equal(t, common.ReportTypeDailyBriefing, reportRepo.saved.Type)
	assert.Equal(t, "Daily Briefing - 2025-03-14", reportRepo.saved.Title)

	var persisted map[string]interface{}
	require.NoError(t, json.Unmarshal(reportRepo.saved.Content, &persisted))
	assert.Equal(t, "2025-03-14", persisted["date"])
}

func TestBriefingGenerate_PopulatedDay(t *testing.T) {
	oppRepo, activityRepo, procRepo, execRepo, alertRepo, companyRepo, _, svc := newBriefingFixture()

	deadline := time.Now().AddDate(0, 0, 5)
	oppRepo.created = []entity.Opportunity{
		{ID: "opp-1", Title: "EU AI Act compliance tooling", OpportunityScore: 85, RevenuePotential: entity.LevelHigh},
		{ID: "opp-2", Title: "NIS2 audit services", OpportunityScore: 60, RevenuePotential: entity.LevelMedium},
	}
	activityRepo.activities = []entity.CompetitorActivity{
		{ID: "act-1", CompetitorName: "Acme Advisory", ActivityType: "product_launch", ThreatLevel: entity.ThreatHigh},
		{ID: "act-2", CompetitorName: "Beta Consulting", ActivityType: "partnership", ThreatLevel: entity.ThreatLow},
	}
	procRepo.procs = []entity.Procurement{
		{ID: "proc-1", Title: "Cybersecurity framework rollout", Region: "Bavaria", SubmissionDeadline: &deadline, Status: entity.ProcurementStatusOpen},
	}
	execRepo.updated = []entity.Executive{
		{ID: "exec-1", Name: "Jordan Vale", Title: "CRO", VulnerabilityScore: 82, Company: &entity.Company{Name: "Scaleup GmbH"}},
	}
	alertRepo.unread = []entity.Alert{
		{ID: "alert-1", Severity: entity.SeverityHigh, Title: "High pressure company: Scaleup GmbH", Message: "Pressure score: 80"},
		{ID: "alert-2", Severity: entity.SeverityLow, Title: "Minor signal", Message: "FYI"},
	}
	companyRepo.underPress = []entity.Company{{ID: "company-1", Name: "Scaleup GmbH", PressureScore: 80}}

	briefing, err := svc.Generate(context.Background(), "user-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, briefing.Stats.NewOpportunities)
	assert.Equal(t, 2, briefing.Stats.CompetitorActivities)
	assert.Equal(t, 1, briefing.Stats.GovernmentUpdates)
	assert.Equal(t, 1, briefing.Stats.ExecutiveAlerts)
	assert.Equal(t, 2, briefing.Stats.TotalAlerts)
	assert.Equal(t, 1, briefing.Stats.HighPriorityItems)

	assert.Contains(t, briefing.ExecutiveSummary, "2 new regulatory opportunities")
	assert.Contains(t, briefing.ExecutiveSummary, "(1 high threat)")
	assert.Contains(t, briefing.ExecutiveSummary, "1 companies are under high pressure")
	assert.NotContains(t, briefing.ExecutiveSummary, "No significant activities")

	require.Len(t, briefing.UpcomingDeadlines, 1)
	assert.Equal(t, 5, briefing.UpcomingDeadlines[0].DaysUntil)

	require.Len(t, briefing.ExecutiveAlerts, 1)
	assert.Equal(t, "Scaleup GmbH", briefing.ExecutiveAlerts[0].CompanyName)
	assert.Equal(t, "increase", briefing.ExecutiveAlerts[0].ChangeType)
}

func TestBriefingGenerate_ActionItemOrderAndCap(t *testing.T) {
	oppRepo, _, procRepo, execRepo, alertRepo, _, _, svc := newBriefingFixture()

	for i := 0; i < 5; i++ {
		oppRepo.created = append(oppRepo.created, entity.Opportunity{
			ID: "opp", Title: "Opportunity", OpportunityScore: 90,
		})
	}
	deadline := time.Now().AddDate(0, 0, 3)
	for i := 0; i < 5; i++ {
		procRepo.procs = append(procRepo.procs, entity.Procurement{
			ID: "proc", Title: "Tender", Region: "Hesse", SubmissionDeadline: &deadline,
		})
	}
	execRepo.updated = []entity.Executive{
		{ID: "exec", Name: "Exec", Title: "CMO", VulnerabilityScore: 85},
	}
	alertRepo.unread = []entity.Alert{
		{ID: "alert", Severity: entity.SeverityHigh, Title: "Alert", Message: "msg"},
	}

	briefing, err := svc.Generate(context.Background(), "user-1", time.Now())
	require.NoError(t, err)

	// 5 opportunity items, then 5 deadline items, then the cap cuts the
	// executive and alert items.
	require.Len(t, briefing.ActionItems, 10)
	assert.Equal(t, "high", briefing.ActionItems[0].Priority)
	assert.Contains(t, briefing.ActionItems[0].Title, "Review opportunity")
	assert.Contains(t, briefing.ActionItems[5].Title, "Tender closing soon")
}

func TestBriefingGenerate_LowScoresProduceNoActionItems(t *testing.T) {
	oppRepo, _, _, execRepo, _, _, _, svc := newBriefingFixture()

	oppRepo.created = []entity.Opportunity{{ID: "opp-1", Title: "Modest", OpportunityScore: 79}}
	execRepo.updated = []entity.Executive{{ID: "exec-1", Name: "Exec", VulnerabilityScore: 65}}

	briefing, err := svc.Generate(context.Background(), "user-1", time.Now())
	require.NoError(t, err)
	assert.Empty(t, briefing.ActionItems)
}

func TestBriefingGet_ReturnsStoredWithoutRegenerating(t *testing.T) {
	_, _, _, _, _, _, reportRepo, svc := newBriefingFixture()

	stored := entity.Report{
		UserID: "user-1",
		Type:   common.ReportTypeDailyBriefing,
		Title:  "Daily Briefing - 2025-03-14",
	}
	content, err := json.Marshal(map[string]interface{}{
		"date":              "2025-03-14",
		"executive_summary": "stored summary",
	})
	require.NoError(t, err)
	stored.Content = content
	reportRepo.stored = &stored

	briefing, err := svc.Get(context.Background(), "user-1", time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "stored summary", briefing.ExecutiveSummary)
	assert.Nil(t, reportRepo.saved, "stored briefing must not be regenerated")
}

func TestBriefingGet_ReturnsNilWhenNotGenerated(t *testing.T) {
	_, _, _, _, _, _, reportRepo, svc := newBriefingFixture()

	briefing, err := svc.Get(context.Background(), "user-1", time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Nil(t, briefing)
	assert.Nil(t, reportRepo.saved, "reading must not generate a briefing")
}

func TestBriefingGenerate_SummaryAndActionItemsIncludeAmounts(t *testing.T) {
	oppRepo, _, procRepo, _, _, _, _, svc := newBriefingFixture()

	deadline := time.Now().AddDate(0, 0, 3)
	oppRepo.created = []entity.Opportunity{
		{ID: "opp-1", Title: "EU AI Act compliance tooling", OpportunityScore: 85, EstimatedMarketSize: f64Ptr(2_500_000)},
		{ID: "opp-2", Title: "NIS2 audit services", OpportunityScore: 60, EstimatedMarketSize: f64Ptr(500_000)},
	}
	procRepo.procs = []entity.Procurement{
		{ID: "proc-1", Title: "Cybersecurity framework rollout", Region: "Bavaria", SubmissionDeadline: &deadline, EstimatedValue: f64Ptr(450_000)},
	}

	briefing, err := svc.Generate(context.Background(), "user-1", time.Now())
	require.NoError(t, err)

	assert.Contains(t, briefing.ExecutiveSummary, "2 new regulatory opportunities identified with a combined market size of €3M.")

	require.Len(t, briefing.ActionItems, 2)
	assert.Contains(t, briefing.ActionItems[0].Description, "€2.5M market")
	assert.Contains(t, briefing.ActionItems[1].Description, "€450k value")
}
