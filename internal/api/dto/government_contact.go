package dto

import "regintel/internal/entity"

// CreateGovernmentContactRequest is the payload for creating a government
// contact.
type CreateGovernmentContactRequest struct {
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Department    string  `json:"department"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	LinkedinURL   string  `json:"linkedin_url"`
	Role          string  `json:"role"`
	Influence     string  `json:"influence"`
	Notes         string  `json:"notes"`
	OpportunityID *string `json:"opportunity_id"`
}

// UpdateGovernmentContactRequest is the partial-update payload for a
// government contact.
type UpdateGovernmentContactRequest struct {
	Name          *string `json:"name"`
	Title         *string `json:"title"`
	Department    *string `json:"department"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	LinkedinURL   *string `json:"linkedin_url"`
	Role          *string `json:"role"`
	Influence     *string `json:"influence"`
	Notes         *string `json:"notes"`
	OpportunityID *string `json:"opportunity_id"`
}

// DepartmentSummary aggregates contacts per department.
type DepartmentSummary struct {
	Department        string `json:"department"`
	Count             int    `json:"count"`
	KeyDecisionMakers int    `json:"key_decision_makers"`
	WithContact       int    `json:"with_contact"`
}

// GovernmentContactListResponse is the response for listing contacts.
type GovernmentContactListResponse struct {
	Contacts              []entity.GovernmentContact `json:"contacts"`
	DepartmentSummary     []DepartmentSummary        `json:"department_summary"`
	InfluenceDistribution map[string]int             `json:"influence_distribution"`
}
