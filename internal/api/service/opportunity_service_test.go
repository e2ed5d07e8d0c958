package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regintel/internal/api/repository"
	"regintel/internal/entity"
)

func TestOpportunityList_BackfillsZeroScores(t *testing.T) {
	oppRepo := newFakeOpportunityRepo()
	svc := NewOpportunityService(oppRepo, testLogger())

	oppRepo.opps["o1"] = &entity.Opportunity{
		ID: "o1", UserID: "user-1", Title: "Legacy record",
		Status:           entity.OpportunityStatusIdentified,
		RevenuePotential: entity.LevelMedium,
		MarketGap:        entity.LevelMedium,
		CompetitionLevel: entity.CompetitionMedium,
	}
	oppRepo.opps["o2"] = &entity.Opportunity{
		ID: "o2", UserID: "user-1", Title: "Already scored",
		OpportunityScore: 70,
	}

	opps, err := svc.List(context.Background(), "user-1", repository.OpportunityFilter{})
	require.NoError(t, err)

	// Base 50 plus the medium tiers for revenue (20), gap (15) and competition (10).
	assert.Equal(t, 95, oppRepo.opps["o1"].OpportunityScore)
	for _, opp := range opps {
		switch opp.ID {
		case "o1":
			assert.Equal(t, 95, opp.OpportunityScore)
		case "o2":
			assert.Equal(t, 70, opp.OpportunityScore, "non-zero scores stay untouched")
		}
	}
}
