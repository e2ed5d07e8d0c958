package dto

import "time"

// CreateResearchTaskRequest is the payload for creating a research task.
type CreateResearchTaskRequest struct {
	OpportunityID *string    `json:"opportunity_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date"`
}

// UpdateResearchTaskRequest is the partial-update payload for a research
// task.
type UpdateResearchTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}
