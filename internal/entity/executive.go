package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Risk factor tags tracked on executives. Unknown tags are accepted and
// scored with a default weight.
const (
	RiskFactorPipelinePressure = "pipeline_pressure"
	RiskFactorAdSpendWaste     = "ad_spend_waste"
	RiskFactorBoardPressure    = "board_pressure"
	RiskFactorNoGTMTeam        = "no_gtm_team"
	RiskFactorFounderLedSales  = "founder_led_sales"
	RiskFactorRecentHire       = "recent_hire"
	RiskFactorPublicCriticism  = "public_criticism"
)

// Executive represents a tracked executive at a target company.
type Executive struct {
	ID                 string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID             string         `gorm:"type:varchar(36);index;not null" json:"user_id"`
	CompanyID          string         `gorm:"type:varchar(36);index;not null" json:"company_id"`
	Name               string         `gorm:"not null" json:"name"`
	Title              string         `gorm:"not null" json:"title"`
	LinkedinURL        string         `json:"linkedin_url"`
	Email              string         `json:"email"`
	RiskFactors        pq.StringArray `gorm:"type:text[]" json:"risk_factors"`
	DesperationSignals pq.StringArray `gorm:"type:text[]" json:"desperation_signals"`
	LastLinkedinPost   *time.Time     `json:"last_linkedin_post,omitempty"`
	Notes              string         `gorm:"type:text" json:"notes"`
	OpportunityType    string         `json:"opportunity_type"`
	VulnerabilityScore int            `gorm:"not null;default:0" json:"vulnerability_score"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Company            *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Alerts             []Alert        `gorm:"foreignKey:ExecutiveID" json:"alerts,omitempty"`
}

// TableName specifies the table name for the Executive model.
func (Executive) TableName() string {
	return "executives"
}

func (e *Executive) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
