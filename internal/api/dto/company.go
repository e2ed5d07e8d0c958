package dto

import (
	"time"

	"regintel/internal/entity"
)

// CreateCompanyRequest is the payload for creating a company.
type CreateCompanyRequest struct {
	Name              string     `json:"name"`
	Website           string     `json:"website"`
	LinkedinURL       string     `json:"linkedin_url"`
	Industry          string     `json:"industry"`
	LastFundingRound  string     `json:"last_funding_round"`
	LastFundingAmount *float64   `json:"last_funding_amount"`
	LastFundingDate   *time.Time `json:"last_funding_date"`
	TotalFunding      *float64   `json:"total_funding"`
	GtmGapDetected    bool       `json:"gtm_gap_detected"`
	ExecutiveTurnover bool       `json:"executive_turnover"`
	AnalysisNotes     string     `json:"analysis_notes"`
}

// UpdateCompanyRequest is the partial-update payload for a company. Nil
// fields are left untouched.
type UpdateCompanyRequest struct {
	Name              *string    `json:"name"`
	Website           *string    `json:"website"`
	LinkedinURL       *string    `json:"linkedin_url"`
	Industry          *string    `json:"industry"`
	LastFundingRound  *string    `json:"last_funding_round"`
	LastFundingAmount *float64   `json:"last_funding_amount"`
	LastFundingDate   *time.Time `json:"last_funding_date"`
	TotalFunding      *float64   `json:"total_funding"`
	GtmGapDetected    *bool      `json:"gtm_gap_detected"`
	ExecutiveTurnover *bool      `json:"executive_turnover"`
	AnalysisNotes     *string    `json:"analysis_notes"`
}

// CompanyStats summarizes a company list result.
type CompanyStats struct {
	Total             int     `json:"total"`
	WithRecentFunding int     `json:"with_recent_funding"`
	GtmGaps           int     `json:"gtm_gaps"`
	ExecutiveTurnover int     `json:"executive_turnover"`
	HighPressure      int     `json:"high_pressure"`
	TotalFunding      float64 `json:"total_funding"`
}

// CompanyListResponse is the response for listing companies.
type CompanyListResponse struct {
	Companies []entity.Company `json:"companies"`
	Stats     CompanyStats     `json:"stats"`
}
