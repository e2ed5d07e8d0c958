package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regintel/internal/api/dto"
	"regintel/internal/entity"
)

func boolPtr(b bool) *bool      { return &b }
func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestCompanyCreate_HighPressureRaisesAlert(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewCompanyService(companyRepo, alertRepo, testLogger())

	funded := time.Now().AddDate(0, 0, -10)
	company, err := svc.Create(context.Background(), "user-1", &dto.CreateCompanyRequest{
		Name:              "Scaleup GmbH",
		Industry:          "fintech",
		LastFundingRound:  "Series B",
		LastFundingAmount: f64Ptr(60_000_000),
		LastFundingDate:   &funded,
		GtmGapDetected:    true,
	})
	require.NoError(t, err)

	// 30 recency + 20 amount + 25 gap = 75
	assert.Equal(t, 75, company.PressureScore)
	require.Len(t, alertRepo.created, 1)
	assert.Equal(t, entity.AlertTypeFundingRound, alertRepo.created[0].Type)
	assert.Equal(t, entity.AlertPriorityHigh, alertRepo.created[0].Priority)
	assert.True(t, alertRepo.created[0].ActionRequired)
	require.NotNil(t, alertRepo.created[0].CompanyID)
	assert.Equal(t, company.ID, *alertRepo.created[0].CompanyID)
}

func TestCompanyCreate_LowPressureStaysQuiet(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewCompanyService(companyRepo, alertRepo, testLogger())

	funded := time.Now().AddDate(0, 0, -120)
	company, err := svc.Create(context.Background(), "user-1", &dto.CreateCompanyRequest{
		Name:            "Quiet Corp",
		Industry:        "logistics",
		LastFundingDate: &funded,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, company.PressureScore)
	assert.Empty(t, alertRepo.created)
}

func TestCompanyUpdate_ThresholdCrossingFiresOnce(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewCompanyService(companyRepo, alertRepo, testLogger())

	funded := time.Now().AddDate(0, 0, -20)
	companyRepo.companies["company-1"] = &entity.Company{
		ID:              "company-1",
		UserID:          "user-1",
		Name:            "Scaleup GmbH",
		Industry:        "fintech",
		LastFundingDate: &funded,
		PressureScore:   30,
	}

	// 30 recency + 25 gap + 20 turnover = 75, crossing 70 from 30.
	updated, err := svc.Update(context.Background(), "company-1", "user-1", &dto.UpdateCompanyRequest{
		GtmGapDetected:    boolPtr(true),
		ExecutiveTurnover: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 75, updated.PressureScore)
	require.Len(t, alertRepo.created, 1)

	// Already above the threshold, so a further update must not re-fire.
	_, err = svc.Update(context.Background(), "company-1", "user-1", &dto.UpdateCompanyRequest{
		AnalysisNotes: strPtr("still watching"),
	})
	require.NoError(t, err)
	assert.Len(t, alertRepo.created, 1)
}

func TestCompanyList_BackfillsZeroScores(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewCompanyService(companyRepo, alertRepo, testLogger())

	funded := time.Now().AddDate(0, 0, -10)
	companyRepo.companies["company-1"] = &entity.Company{
		ID:              "company-1",
		UserID:          "user-1",
		Name:            "Fresh Raise Inc",
		LastFundingDate: &funded,
	}

	resp, err := svc.List(context.Background(), "user-1", CompanyListOptions{})
	require.NoError(t, err)

	require.Len(t, resp.Companies, 1)
	assert.Equal(t, 30, resp.Companies[0].PressureScore)
	assert.Equal(t, 30, companyRepo.scoreUpdates["company-1"], "recomputed score must be persisted")
}

func TestCompanyList_PressureBandFilterAndStats(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewCompanyService(companyRepo, alertRepo, testLogger())

	companyRepo.companies["high"] = &entity.Company{
		ID: "high", UserID: "user-1", Name: "High", PressureScore: 80,
		GtmGapDetected: true, TotalFunding: f64Ptr(10_000_000),
	}
	companyRepo.companies["mid"] = &entity.Company{
		ID: "mid", UserID: "user-1", Name: "Mid", PressureScore: 50,
	}
	companyRepo.companies["low"] = &entity.Company{
		ID: "low", UserID: "user-1", Name: "Low", PressureScore: 20,
	}

	resp, err := svc.List(context.Background(), "user-1", CompanyListOptions{Pressure: PressureBandHigh})
	require.NoError(t, err)
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, "High", resp.Companies[0].Name)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.HighPressure)
	assert.Equal(t, 1, resp.Stats.GtmGaps)
	assert.Equal(t, float64(10_000_000), resp.Stats.TotalFunding)

	resp, err = svc.List(context.Background(), "user-1", CompanyListOptions{Pressure: PressureBandMedium})
	require.NoError(t, err)
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, "Mid", resp.Companies[0].Name)

	resp, err = svc.List(context.Background(), "user-1", CompanyListOptions{})
	require.NoError(t, err)
	assert.Len(t, resp.Companies, 3)
}
