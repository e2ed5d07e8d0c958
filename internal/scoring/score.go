// Package scoring holds the derived-metric calculations for companies,
// executives and opportunities. Every function here is pure: it reads the
// snapshot it is given (plus an explicit reference time where recency
// matters) and returns an integer clamped to [0,100]. Persisting results
// and raising alerts is the caller's job.
package scoring

import (
	"math"
	"strings"
	"time"

	"regintel/internal/entity"
)

// Funding amount tiers, in the funding currency.
const (
	fundingTierLarge  = 50_000_000
	fundingTierMedium = 20_000_000
	fundingTierSmall  = 10_000_000
)

// riskFactorWeights is the canonical per-tag weight table. Tags not listed
// contribute a default of 5.
var riskFactorWeights = map[string]int{
	entity.RiskFactorPipelinePressure: 15,
	entity.RiskFactorAdSpendWaste:     10,
	entity.RiskFactorBoardPressure:    20,
	entity.RiskFactorNoGTMTeam:        15,
	entity.RiskFactorFounderLedSales:  10,
	entity.RiskFactorRecentHire:       10,
	entity.RiskFactorPublicCriticism:  15,
}

const defaultRiskFactorWeight = 5

// desperationSignalCap bounds the contribution of desperation signals
// (5 points each).
const desperationSignalCap = 30

// PressureScore estimates a company's financial and organizational strain.
// Executives must already be loaded on the company; a missing or empty
// slice contributes nothing.
func PressureScore(company *entity.Company, now time.Time) int {
	score := 0

	if company.LastFundingDate != nil {
		switch days := daysBetween(*company.LastFundingDate, now); {
		case days <= 30:
			score += 30
		case days <= 60:
			score += 25
		case days <= 90:
			score += 20
		case days <= 180:
			score += 10
		}
	}

	if company.LastFundingAmount != nil {
		switch amount := *company.LastFundingAmount; {
		case amount >= fundingTierLarge:
			score += 20
		case amount >= fundingTierMedium:
			score += 15
		case amount >= fundingTierSmall:
			score += 10
		}
	}

	if company.GtmGapDetected {
		score += 25
	}
	if company.ExecutiveTurnover {
		score += 20
	}

	maxVulnerability := 0
	for _, exec := range company.Executives {
		if exec.VulnerabilityScore > maxVulnerability {
			maxVulnerability = exec.VulnerabilityScore
		}
	}
	score += int(math.Floor(float64(maxVulnerability) * 0.05))

	return clamp(score)
}

// VulnerabilityScore estimates an executive's susceptibility to external
// engagement. The parent company may be nil; company-driven bonuses then
// contribute nothing.
func VulnerabilityScore(exec *entity.Executive, now time.Time) int {
	score := titleScore(exec, now)

	for _, factor := range exec.RiskFactors {
		if weight, ok := riskFactorWeights[factor]; ok {
			score += weight
		} else {
			score += defaultRiskFactorWeight
		}
	}

	desperation := len(exec.DesperationSignals) * 5
	if desperation > desperationSignalCap {
		desperation = desperationSignalCap
	}
	score += desperation

	if exec.LastLinkedinPost != nil && daysBetween(*exec.LastLinkedinPost, now) <= 7 {
		score += 5
	}

	if exec.Company != nil {
		if exec.Company.GtmGapDetected {
			score += 10
		}
		if exec.Company.LastFundingDate != nil && daysBetween(*exec.Company.LastFundingDate, now) <= 90 {
			score += 10
		}
	}

	return clamp(score)
}

func titleScore(exec *entity.Executive, now time.Time) int {
	title := strings.ToUpper(exec.Title)
	switch {
	case strings.Contains(title, "CMO"):
		return 20
	case strings.Contains(title, "CRO"):
		return 25
	case strings.Contains(title, "CEO"):
		if exec.Company != nil && exec.Company.LastFundingDate != nil {
			return 15
		}
		return 0
	case strings.Contains(title, "VP") && (strings.Contains(title, "SALES") || strings.Contains(title, "MARKETING")):
		return 15
	case strings.Contains(title, "DIRECTOR"):
		return 10
	}
	return 0
}

// OpportunityScore ranks a regulatory opportunity's attractiveness.
func OpportunityScore(opp *entity.Opportunity) int {
	score := 50.0

	switch opp.RevenuePotential {
	case entity.LevelLow:
		score += 10
	case entity.LevelMedium:
		score += 20
	case entity.LevelHigh:
		score += 30
	case entity.LevelVeryHigh:
		score += 40
	}

	switch opp.MarketGap {
	case entity.LevelLow:
		score += 5
	case entity.LevelMedium:
		score += 15
	case entity.LevelHigh:
		score += 25
	case entity.LevelVeryHigh:
		score += 35
	}

	// Less competition scores higher.
	switch opp.CompetitionLevel {
	case entity.CompetitionNone:
		score += 25
	case entity.CompetitionLow:
		score += 20
	case entity.CompetitionMedium:
		score += 10
	case entity.CompetitionHigh:
		score += 5
	}

	if opp.LeadTimeMonths != nil {
		switch months := *opp.LeadTimeMonths; {
		case months >= 18:
			score += 15
		case months >= 12:
			score += 10
		case months >= 6:
			score += 5
		}
	}

	if opp.Status == entity.OpportunityStatusLost || opp.Status == entity.OpportunityStatusArchived {
		score *= 0.5
	}

	return clamp(int(math.Round(score)))
}

// LeadTimeMonths derives the whole months from now until the implementation
// date. Returns nil when no date is set; negative when the date has passed.
func LeadTimeMonths(implementationDate *time.Time, now time.Time) *int {
	if implementationDate == nil {
		return nil
	}
	months := int(math.Floor(implementationDate.Sub(now).Hours() / 24 / 30))
	return &months
}

// DidCrossThreshold reports whether a score moved from below threshold to
// at-or-above it. Alerts keyed on this fire exactly once, at the crossing.
func DidCrossThreshold(oldScore, newScore, threshold int) bool {
	return oldScore < threshold && newScore >= threshold
}

func daysBetween(then, now time.Time) int {
	return int(math.Floor(now.Sub(then).Hours() / 24))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
