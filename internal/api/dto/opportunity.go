package dto

import "time"

// CreateOpportunityRequest is the payload for creating an opportunity.
type CreateOpportunityRequest struct {
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	RegulationType         string     `json:"regulation_type"`
	RegulationReference    string     `json:"regulation_reference"`
	ImplementationDate     *time.Time `json:"implementation_date"`
	DeadlineDate           *time.Time `json:"deadline_date"`
	LegislativeStage       string     `json:"legislative_stage"`
	TargetIndustries       []string   `json:"target_industries"`
	AffectedCountries      []string   `json:"affected_countries"`
	EstimatedMarketSize    *float64   `json:"estimated_market_size"`
	ComplianceRequirements string     `json:"compliance_requirements"`
}

// UpdateOpportunityRequest is the partial-update payload for an
// opportunity.
type UpdateOpportunityRequest struct {
	Title                  *string    `json:"title"`
	Description            *string    `json:"description"`
	RegulationType         *string    `json:"regulation_type"`
	RegulationReference    *string    `json:"regulation_reference"`
	ImplementationDate     *time.Time `json:"implementation_date"`
	DeadlineDate           *time.Time `json:"deadline_date"`
	Status                 *string    `json:"status"`
	Priority               *string    `json:"priority"`
	RevenuePotential       *string    `json:"revenue_potential"`
	MarketGap              *string    `json:"market_gap"`
	CompetitionLevel       *string    `json:"competition_level"`
	LegislativeStage       *string    `json:"legislative_stage"`
	TargetIndustries       []string   `json:"target_industries"`
	AffectedCountries      []string   `json:"affected_countries"`
	EstimatedMarketSize    *float64   `json:"estimated_market_size"`
	ComplianceRequirements *string    `json:"compliance_requirements"`
}
