package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert types.
const (
	AlertTypeFundingRound      = "FUNDING_ROUND"
	AlertTypeExecutiveMovement = "EXECUTIVE_VULNERABILITY"
	AlertTypeCompetitor        = "COMPETITOR_ACTIVITY"
	AlertTypeProcurementMatch  = "PROCUREMENT_MATCH"
	AlertTypeMarketSignal      = "MARKET_SIGNAL"
)

// AlertPriority ranks an alert for triage.
type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "LOW"
	AlertPriorityMedium   AlertPriority = "MEDIUM"
	AlertPriorityHigh     AlertPriority = "HIGH"
	AlertPriorityCritical AlertPriority = "CRITICAL"
)

// Alert severities, as consumed by the briefing.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Alert represents a notification raised against a CRM record.
type Alert struct {
	ID             string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID         string        `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Type           string        `gorm:"not null" json:"type"`
	Priority       AlertPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Severity       string        `gorm:"type:varchar(10);not null;default:'medium'" json:"severity"`
	Title          string        `json:"title"`
	Message        string        `gorm:"type:text;not null" json:"message"`
	IsRead         bool          `gorm:"not null;default:false" json:"is_read"`
	ActionRequired bool          `gorm:"not null;default:false" json:"action_required"`
	ActionURL      string        `json:"action_url"`
	CompanyID      *string       `gorm:"type:varchar(36);index" json:"company_id,omitempty"`
	OpportunityID  *string       `gorm:"type:varchar(36);index" json:"opportunity_id,omitempty"`
	ExecutiveID    *string       `gorm:"type:varchar(36);index" json:"executive_id,omitempty"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Alert model.
func (Alert) TableName() string {
	return "alerts"
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
