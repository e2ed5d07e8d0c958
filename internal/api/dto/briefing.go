package dto

import "time"

// GenerateBriefingRequest is the payload for POST /briefings/generate.
type GenerateBriefingRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// BriefingStats are the headline counters of a daily briefing.
type BriefingStats struct {
	NewOpportunities     int `json:"new_opportunities"`
	CompetitorActivities int `json:"competitor_activities"`
	GovernmentUpdates    int `json:"government_updates"`
	ExecutiveAlerts      int `json:"executive_alerts"`
	TotalAlerts          int `json:"total_alerts"`
	HighPriorityItems    int `json:"high_priority_items"`
}

// BriefingOpportunity is the briefing view of a new opportunity.
type BriefingOpportunity struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	OpportunityScore    int      `json:"opportunity_score"`
	RevenuePotential    string   `json:"revenue_potential"`
	EstimatedMarketSize *float64 `json:"estimated_market_size,omitempty"`
}

// BriefingCompetitorActivity is the briefing view of a competitor move.
type BriefingCompetitorActivity struct {
	ID             string `json:"id"`
	CompetitorName string `json:"competitor_name"`
	ActivityType   string `json:"activity_type"`
	Description    string `json:"description"`
	ThreatLevel    string `json:"threat_level"`
}

// BriefingDeadline is the briefing view of an upcoming tender deadline.
type BriefingDeadline struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Region         string   `json:"region"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	DaysUntil      int      `json:"days_until"`
}

// BriefingExecutiveAlert is the briefing view of a vulnerable executive.
type BriefingExecutiveAlert struct {
	ID                 string `json:"id"`
	ExecutiveName      string `json:"executive_name"`
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	VulnerabilityScore int    `json:"vulnerability_score"`
	ChangeType         string `json:"change_type"`
	ChangeAmount       int    `json:"change_amount"`
}

// ActionItem is a single ranked entry of the briefing's to-do list.
type ActionItem struct {
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Briefing is the full daily digest.
type Briefing struct {
	Date                 string                       `json:"date"`
	Stats                BriefingStats                `json:"stats"`
	ExecutiveSummary     string                       `json:"executive_summary"`
	Opportunities        []BriefingOpportunity        `json:"opportunities"`
	CompetitorActivities []BriefingCompetitorActivity `json:"competitor_activities"`
	UpcomingDeadlines    []BriefingDeadline           `json:"upcoming_deadlines"`
	ExecutiveAlerts      []BriefingExecutiveAlert     `json:"executive_alerts"`
	ActionItems          []ActionItem                 `json:"action_items"`
	GeneratedAt          time.Time                    `json:"generated_at"`
}
