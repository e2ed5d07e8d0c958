package dto

import (
	"time"

	"regintel/internal/entity"
)

// CreateExecutiveRequest is the payload for creating an executive.
type CreateExecutiveRequest struct {
	CompanyID          string     `json:"company_id"`
	Name               string     `json:"name"`
	Title              string     `json:"title"`
	LinkedinURL        string     `json:"linkedin_url"`
	Email              string     `json:"email"`
	RiskFactors        []string   `json:"risk_factors"`
	DesperationSignals []string   `json:"desperation_signals"`
	LastLinkedinPost   *time.Time `json:"last_linkedin_post"`
	Notes              string     `json:"notes"`
	OpportunityType    string     `json:"opportunity_type"`
}

// UpdateExecutiveRequest is the partial-update payload for an executive.
type UpdateExecutiveRequest struct {
	Name               *string    `json:"name"`
	Title              *string    `json:"title"`
	LinkedinURL        *string    `json:"linkedin_url"`
	Email              *string    `json:"email"`
	RiskFactors        []string   `json:"risk_factors"`
	DesperationSignals []string   `json:"desperation_signals"`
	LastLinkedinPost   *time.Time `json:"last_linkedin_post"`
	Notes              *string    `json:"notes"`
	OpportunityType    *string    `json:"opportunity_type"`
}

// RiskFactorCount pairs a risk factor tag with its occurrence count.
type RiskFactorCount struct {
	Factor string `json:"factor"`
	Count  int    `json:"count"`
}

// ExecutiveStats summarizes an executive list result.
type ExecutiveStats struct {
	Total                  int               `json:"total"`
	HighVulnerability      int               `json:"high_vulnerability"`
	WithDesperationSignals int               `json:"with_desperation_signals"`
	TitleDistribution      map[string]int    `json:"title_distribution"`
	TopRiskFactors         []RiskFactorCount `json:"top_risk_factors"`
}

// ExecutiveListResponse is the response for listing executives.
type ExecutiveListResponse struct {
	Executives []entity.Executive `json:"executives"`
	Stats      ExecutiveStats     `json:"stats"`
}
