package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThreatLevel classifies the severity of a competitor activity.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "LOW"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

// CompetitorActivity represents an observed competitor move against a
// tracked opportunity.
type CompetitorActivity struct {
	ID             string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OpportunityID  string       `gorm:"type:varchar(36);index;not null" json:"opportunity_id"`
	CompetitorName string       `gorm:"not null" json:"competitor_name"`
	ActivityType   string       `gorm:"not null" json:"activity_type"`
	ActivityDate   time.Time    `gorm:"not null" json:"activity_date"`
	Description    string       `gorm:"type:text;not null" json:"description"`
	SourceURL      string       `json:"source_url"`
	ThreatLevel    ThreatLevel  `gorm:"type:varchar(20);not null;default:'LOW'" json:"threat_level"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
	Opportunity    *Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`
}

// TableName specifies the table name for the CompetitorActivity model.
func (CompetitorActivity) TableName() string {
	return "competitor_activities"
}

func (a *CompetitorActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
