package dto

import (
	"time"

	"regintel/internal/entity"
)

// CreateCompetitorActivityRequest is the payload for recording a
// competitor activity.
type CreateCompetitorActivityRequest struct {
	OpportunityID  string    `json:"opportunity_id"`
	CompetitorName string    `json:"competitor_name"`
	ActivityType   string    `json:"activity_type"`
	ActivityDate   time.Time `json:"activity_date"`
	Description    string    `json:"description"`
	SourceURL      string    `json:"source_url"`
	ThreatLevel    string    `json:"threat_level"`
}

// UpdateCompetitorActivityRequest is the partial-update payload for a
// competitor activity.
type UpdateCompetitorActivityRequest struct {
	CompetitorName *string    `json:"competitor_name"`
	ActivityType   *string    `json:"activity_type"`
	ActivityDate   *time.Time `json:"activity_date"`
	Description    *string    `json:"description"`
	SourceURL      *string    `json:"source_url"`
	ThreatLevel    *string    `json:"threat_level"`
}

// CompetitorSummary aggregates all activities of one competitor.
type CompetitorSummary struct {
	Name            string         `json:"name"`
	TotalActivities int            `json:"total_activities"`
	Opportunities   []string       `json:"opportunities"`
	LatestActivity  *time.Time     `json:"latest_activity"`
	ThreatLevels    map[string]int `json:"threat_levels"`
}

// CompetitorActivityListResponse is the response for listing competitor
// activities.
type CompetitorActivityListResponse struct {
	Activities []entity.CompetitorActivity `json:"activities"`
	Summary    []CompetitorSummary         `json:"summary"`
	Total      int                         `json:"total"`
}
