package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
)

func TestExecutiveCreate_ScoresAndRefreshesCompanyPressure(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	execRepo := newFakeExecutiveRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewExecutiveService(execRepo, companyRepo, alertRepo, testLogger())

	companyRepo.companies["company-1"] = &entity.Company{
		ID:     "company-1",
		UserID: "user-1",
		Name:   "Scaleup GmbH",
	}

	exec, err := svc.Create(context.Background(), "user-1", &dto.CreateExecutiveRequest{
		CompanyID:   "company-1",
		Name:        "Jordan Vale",
		Title:       "CRO",
		RiskFactors: []string{entity.RiskFactorBoardPressure, entity.RiskFactorPipelinePressure},
	})
	require.NoError(t, err)

	// CRO title 25 + board_pressure 20 + pipeline_pressure 15 = 60.
	assert.Equal(t, 60, exec.VulnerabilityScore)
	assert.Empty(t, alertRepo.created)

	// Pressure picks up floor(60 * 0.05) = 3 from the top executive.
	execRepo.byCompany["company-1"] = []entity.Executive{*exec}
	_, err = svc.Update(context.Background(), exec.ID, "user-1", &dto.UpdateExecutiveRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, companyRepo.scoreUpdates["company-1"])
}

func TestExecutiveUpdate_VulnerabilityCrossingFiresAlert(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	execRepo := newFakeExecutiveRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewExecutiveService(execRepo, companyRepo, alertRepo, testLogger())

	companyRepo.companies["company-1"] = &entity.Company{ID: "company-1", UserID: "user-1", Name: "Scaleup GmbH"}
	execRepo.execs["exec-1"] = &entity.Executive{
		ID:                 "exec-1",
		UserID:             "user-1",
		CompanyID:          "company-1",
		Name:               "Jordan Vale",
		Title:              "CRO",
		RiskFactors:        []string{entity.RiskFactorBoardPressure},
		VulnerabilityScore: 45,
		Company:            &entity.Company{ID: "company-1", UserID: "user-1", Name: "Scaleup GmbH"},
	}

	// 25 title + 20 board_pressure + 15 no_gtm_team + 15 pipeline_pressure = 75.
	updated, err := svc.Update(context.Background(), "exec-1", "user-1", &dto.UpdateExecutiveRequest{
		RiskFactors: []string{entity.RiskFactorBoardPressure, entity.RiskFactorNoGTMTeam, entity.RiskFactorPipelinePressure},
	})
	require.NoError(t, err)

	assert.Equal(t, 75, updated.VulnerabilityScore)
	require.Len(t, alertRepo.created, 1)
	assert.Equal(t, entity.AlertTypeExecutiveMovement, alertRepo.created[0].Type)
	require.NotNil(t, alertRepo.created[0].ExecutiveID)
	assert.Equal(t, "exec-1", *alertRepo.created[0].ExecutiveID)

	// A second update above the threshold stays quiet.
	_, err = svc.Update(context.Background(), "exec-1", "user-1", &dto.UpdateExecutiveRequest{
		Notes: strPtr("reached out on LinkedIn"),
	})
	require.NoError(t, err)
	assert.Len(t, alertRepo.created, 1)
}

func TestExecutiveList_BackfillsZeroScores(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	execRepo := newFakeExecutiveRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewExecutiveService(execRepo, companyRepo, alertRepo, testLogger())

	execRepo.execs["e1"] = &entity.Executive{
		ID: "e1", UserID: "user-1", Name: "A", Title: "CMO",
		RiskFactors: []string{entity.RiskFactorPipelinePressure},
	}
	execRepo.execs["e2"] = &entity.Executive{
		ID: "e2", UserID: "user-1", Name: "B", Title: "CRO",
		VulnerabilityScore: 45,
	}

	resp, err := svc.List(context.Background(), "user-1", repository.ExecutiveFilter{})
	require.NoError(t, err)

	// CMO title 20 plus pipeline_pressure 15, persisted through the repo.
	assert.Equal(t, 35, execRepo.execs["e1"].VulnerabilityScore)
	for _, exec := range resp.Executives {
		switch exec.ID {
		case "e1":
			assert.Equal(t, 35, exec.VulnerabilityScore)
		case "e2":
			assert.Equal(t, 45, exec.VulnerabilityScore, "non-zero scores stay untouched")
		}
	}
}

func TestExecutiveList_Stats(t *testing.T) {
	companyRepo := newFakeCompanyRepo()
	execRepo := newFakeExecutiveRepo()
	alertRepo := &fakeAlertRepo{}
	svc := NewExecutiveService(execRepo, companyRepo, alertRepo, testLogger())

	execRepo.execs["e1"] = &entity.Executive{
		ID: "e1", UserID: "user-1", Name: "A", Title: "CMO",
		RiskFactors:        []string{entity.RiskFactorBoardPressure, entity.RiskFactorAdSpendWaste},
		DesperationSignals: []string{"public plea for leads"},
		VulnerabilityScore: 80,
	}
	execRepo.execs["e2"] = &entity.Executive{
		ID: "e2", UserID: "user-1", Name: "B", Title: "CMO",
		RiskFactors:        []string{entity.RiskFactorBoardPressure},
		VulnerabilityScore: 40,
	}

	resp, err := svc.List(context.Background(), "user-1", repository.ExecutiveFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.HighVulnerability)
	assert.Equal(t, 1, resp.Stats.WithDesperationSignals)
	assert.Equal(t, 2, resp.Stats.TitleDistribution["CMO"])
	require.NotEmpty(t, resp.Stats.TopRiskFactors)
	assert.Equal(t, entity.RiskFactorBoardPressure, resp.Stats.TopRiskFactors[0].Factor)
	assert.Equal(t, 2, resp.Stats.TopRiskFactors[0].Count)
}
