package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regintel/internal/entity"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func amount(v float64) *float64 {
	return &v
}

func TestPressureScore(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		// Funded 15 days ago with $60M, GTM gap, turnover, one executive at
		// vulnerability 80: 30 + 20 + 25 + 20 + floor(80*0.05) = 99.
		company := &entity.Company{
			LastFundingDate:   daysAgo(15),
			LastFundingAmount: amount(60_000_000),
			GtmGapDetected:    true,
			ExecutiveTurnover: true,
			Executives: []entity.Executive{
				{VulnerabilityScore: 80},
			},
		}
		assert.Equal(t, 99, PressureScore(company, testNow))
	})

	t.Run("empty company scores zero", func(t *testing.T) {
		assert.Equal(t, 0, PressureScore(&entity.Company{}, testNow))
	})

	t.Run("recency tiers", func(t *testing.T) {
		for _, tc := range []struct {
			days int
			want int
		}{
			{10, 30},
			{30, 30},
			{45, 25},
			{75, 20},
			{120, 10},
			{365, 0},
		} {
			company := &entity.Company{LastFundingDate: daysAgo(tc.days)}
			assert.Equal(t, tc.want, PressureScore(company, testNow), "days=%d", tc.days)
		}
	})

	t.Run("monotonic in funding recency", func(t *testing.T) {
		recent := PressureScore(&entity.Company{LastFundingDate: daysAgo(10)}, testNow)
		older := PressureScore(&entity.Company{LastFundingDate: daysAgo(100)}, testNow)
		assert.GreaterOrEqual(t, recent, older)
	})

	t.Run("monotonic in funding amount", func(t *testing.T) {
		prev := -1
		for _, v := range []float64{1_000_000, 10_000_000, 20_000_000, 50_000_000, 500_000_000} {
			got := PressureScore(&entity.Company{LastFundingAmount: amount(v)}, testNow)
			assert.GreaterOrEqual(t, got, prev, "amount=%v", v)
			prev = got
		}
	})

	t.Run("clamped to 100", func(t *testing.T) {
		company := &entity.Company{
			LastFundingDate:   daysAgo(5),
			LastFundingAmount: amount(100_000_000),
			GtmGapDetected:    true,
			ExecutiveTurnover: true,
			Executives: []entity.Executive{
				{VulnerabilityScore: 100},
			},
		}
		// 30+20+25+20+5 = 100, right at the boundary.
		assert.Equal(t, 100, PressureScore(company, testNow))
	})
}

func TestVulnerabilityScore(t *testing.T) {
	t.Run("title tiers", func(t *testing.T) {
		for _, tc := range []struct {
			title string
			want  int
		}{
			{"Chief Marketing Officer (CMO)", 20},
			{"CRO", 25},
			{"VP Sales", 15},
			{"VP of Marketing", 15},
			{"Director of Operations", 10},
			{"Software Engineer", 0},
		} {
			exec := &entity.Executive{Title: tc.title}
			assert.Equal(t, tc.want, VulnerabilityScore(exec, testNow), "title=%s", tc.title)
		}
	})

	t.Run("ceo scores only when company has funding", func(t *testing.T) {
		unfunded := &entity.Executive{Title: "CEO", Company: &entity.Company{}}
		assert.Equal(t, 0, VulnerabilityScore(unfunded, testNow))

		funded := &entity.Executive{Title: "CEO", Company: &entity.Company{LastFundingDate: daysAgo(200)}}
		assert.Equal(t, 15, VulnerabilityScore(funded, testNow))
	})

	t.Run("risk factor adds exactly its table weight", func(t *testing.T) {
		base := &entity.Executive{Title: "VP Sales"}
		baseScore := VulnerabilityScore(base, testNow)

		for factor, weight := range map[string]int{
			entity.RiskFactorPipelinePressure: 15,
			entity.RiskFactorAdSpendWaste:     10,
			entity.RiskFactorBoardPressure:    20,
			entity.RiskFactorPublicCriticism:  15,
		} {
			withFactor := &entity.Executive{Title: "VP Sales", RiskFactors: []string{factor}}
			assert.Equal(t, baseScore+weight, VulnerabilityScore(withFactor, testNow), "factor=%s", factor)
		}
	})

	t.Run("unknown risk factor defaults to 5", func(t *testing.T) {
		exec := &entity.Executive{RiskFactors: []string{"something_new"}}
		assert.Equal(t, 5, VulnerabilityScore(exec, testNow))
	})

	t.Run("desperation signals capped at 30", func(t *testing.T) {
		six := &entity.Executive{DesperationSignals: make([]string, 6)}
		assert.Equal(t, 30, VulnerabilityScore(six, testNow))

		// Adding a seventh signal leaves the score unchanged.
		seven := &entity.Executive{DesperationSignals: make([]string, 7)}
		assert.Equal(t, VulnerabilityScore(six, testNow), VulnerabilityScore(seven, testNow))
	})

	t.Run("recent social post adds 5", func(t *testing.T) {
		active := &entity.Executive{LastLinkedinPost: daysAgo(3)}
		assert.Equal(t, 5, VulnerabilityScore(active, testNow))

		quiet := &entity.Executive{LastLinkedinPost: daysAgo(30)}
		assert.Equal(t, 0, VulnerabilityScore(quiet, testNow))
	})

	t.Run("company factors", func(t *testing.T) {
		exec := &entity.Executive{
			Company: &entity.Company{
				GtmGapDetected:  true,
				LastFundingDate: daysAgo(45),
			},
		}
		assert.Equal(t, 20, VulnerabilityScore(exec, testNow))
	})

	t.Run("never exceeds 100", func(t *testing.T) {
		exec := &entity.Executive{
			Title: "CRO",
			RiskFactors: []string{
				entity.RiskFactorPipelinePressure,
				entity.RiskFactorBoardPressure,
				entity.RiskFactorNoGTMTeam,
				entity.RiskFactorPublicCriticism,
				entity.RiskFactorAdSpendWaste,
			},
			DesperationSignals: make([]string, 10),
			LastLinkedinPost:   daysAgo(1),
			Company: &entity.Company{
				GtmGapDetected:  true,
				LastFundingDate: daysAgo(10),
			},
		}
		assert.Equal(t, 100, VulnerabilityScore(exec, testNow))
	})
}

func TestOpportunityScore(t *testing.T) {
	months := func(n int) *int { return &n }

	t.Run("worked example clamps at 100", func(t *testing.T) {
		// 50 + 30 + 35 + 25 + 15 = 155, clamped.
		opp := &entity.Opportunity{
			RevenuePotential: entity.LevelHigh,
			MarketGap:        entity.LevelVeryHigh,
			CompetitionLevel: entity.CompetitionNone,
			LeadTimeMonths:   months(20),
			Status:           entity.OpportunityStatusPursuing,
		}
		assert.Equal(t, 100, OpportunityScore(opp))
	})

	t.Run("lost halves the active score", func(t *testing.T) {
		active := &entity.Opportunity{
			RevenuePotential: entity.LevelMedium,
			MarketGap:        entity.LevelLow,
			CompetitionLevel: entity.CompetitionHigh,
			Status:           entity.OpportunityStatusPursuing,
		}
		lost := &entity.Opportunity{
			RevenuePotential: entity.LevelMedium,
			MarketGap:        entity.LevelLow,
			CompetitionLevel: entity.CompetitionHigh,
			Status:           entity.OpportunityStatusLost,
		}
		// 50+20+5+5 = 80 active, 40 lost.
		require.Equal(t, 80, OpportunityScore(active))
		assert.Equal(t, 40, OpportunityScore(lost))
	})

	t.Run("archived halves with rounding", func(t *testing.T) {
		archived := &entity.Opportunity{
			RevenuePotential: entity.LevelLow,
			MarketGap:        entity.LevelLow,
			CompetitionLevel: entity.CompetitionSaturated,
			Status:           entity.OpportunityStatusArchived,
		}
		// 65 * 0.5 = 32.5, rounds to 33.
		assert.Equal(t, 33, OpportunityScore(archived))
	})

	t.Run("lead time tiers", func(t *testing.T) {
		for _, tc := range []struct {
			months int
			want   int
		}{
			{24, 65},
			{18, 65},
			{13, 60},
			{7, 55},
			{2, 50},
			{-3, 50},
		} {
			opp := &entity.Opportunity{LeadTimeMonths: months(tc.months)}
			assert.Equal(t, tc.want, OpportunityScore(opp), "months=%d", tc.months)
		}
	})

	t.Run("zero-value opportunity stays in range", func(t *testing.T) {
		got := OpportunityScore(&entity.Opportunity{})
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	})
}

func TestLeadTimeMonths(t *testing.T) {
	t.Run("nil date", func(t *testing.T) {
		assert.Nil(t, LeadTimeMonths(nil, testNow))
	})

	t.Run("future date", func(t *testing.T) {
		impl := testNow.AddDate(0, 0, 600)
		got := LeadTimeMonths(&impl, testNow)
		require.NotNil(t, got)
		assert.Equal(t, 20, *got)
	})

	t.Run("past date is negative", func(t *testing.T) {
		impl := testNow.AddDate(0, 0, -90)
		got := LeadTimeMonths(&impl, testNow)
		require.NotNil(t, got)
		assert.Equal(t, -3, *got)
	})
}

func TestDidCrossThreshold(t *testing.T) {
	assert.True(t, DidCrossThreshold(69, 70, 70))
	assert.True(t, DidCrossThreshold(0, 100, 70))
	assert.False(t, DidCrossThreshold(70, 75, 70), "already above, must not re-fire")
	assert.False(t, DidCrossThreshold(75, 69, 70))
	assert.False(t, DidCrossThreshold(69, 69, 70))
}
