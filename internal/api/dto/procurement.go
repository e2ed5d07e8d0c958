package dto

import (
	"time"

	"regintel/internal/entity"
)

// CreateProcurementRequest is the payload for creating a procurement.
type CreateProcurementRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	ProcurementNumber  string     `json:"procurement_number"`
	Region             string     `json:"region"`
	IssuingAuthority   string     `json:"issuing_authority"`
	PublishDate        time.Time  `json:"publish_date"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	EstimatedValue     *float64   `json:"estimated_value"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	ServiceGap         bool       `json:"service_gap"`
	Bottleneck         bool       `json:"bottleneck"`
	GapAnalysis        string     `json:"gap_analysis"`
	ProposalDraft      string     `json:"proposal_draft"`
	WinProbability     *int       `json:"win_probability"`
}

// UpdateProcurementRequest is the partial-update payload for a
// procurement.
type UpdateProcurementRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	ProcurementNumber  *string    `json:"procurement_number"`
	Region             *string    `json:"region"`
	IssuingAuthority   *string    `json:"issuing_authority"`
	PublishDate        *time.Time `json:"publish_date"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	EstimatedValue     *float64   `json:"estimated_value"`
	Currency           *string    `json:"currency"`
	Status             *string    `json:"status"`
	ServiceGap         *bool      `json:"service_gap"`
	Bottleneck         *bool      `json:"bottleneck"`
	GapAnalysis        *string    `json:"gap_analysis"`
	ProposalDraft      *string    `json:"proposal_draft"`
	WinProbability     *int       `json:"win_probability"`
}

// ProcurementStats summarizes a procurement list result.
type ProcurementStats struct {
	Total             int     `json:"total"`
	Open              int     `json:"open"`
	TotalValue        float64 `json:"total_value"`
	ServiceGaps       int     `json:"service_gaps"`
	Bottlenecks       int     `json:"bottlenecks"`
	UpcomingDeadlines int     `json:"upcoming_deadlines"`
}

// RegionSummary aggregates procurements per region.
type RegionSummary struct {
	Region      string  `json:"region"`
	Count       int     `json:"count"`
	Value       float64 `json:"value"`
	Open        int     `json:"open"`
	ServiceGaps int     `json:"service_gaps"`
}

// ProcurementListResponse is the response for listing procurements.
type ProcurementListResponse struct {
	Procurements  []entity.Procurement `json:"procurements"`
	Stats         ProcurementStats     `json:"stats"`
	RegionSummary []RegionSummary      `json:"region_summary"`
}
