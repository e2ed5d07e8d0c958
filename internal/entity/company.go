package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a target company under observation.
type Company struct {
	ID                string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID            string      `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Name              string      `gorm:"not null" json:"name"`
	Website           string      `json:"website"`
	LinkedinURL       string      `json:"linkedin_url"`
	Industry          string      `gorm:"not null" json:"industry"`
	LastFundingRound  string      `json:"last_funding_round"`
	LastFundingAmount *float64    `json:"last_funding_amount,omitempty"`
	LastFundingDate   *time.Time  `json:"last_funding_date,omitempty"`
	TotalFunding      *float64    `json:"total_funding,omitempty"`
	GtmGapDetected    bool        `gorm:"not null;default:false" json:"gtm_gap_detected"`
	ExecutiveTurnover bool        `gorm:"not null;default:false" json:"executive_turnover"`
	AnalysisNotes     string      `gorm:"type:text" json:"analysis_notes"`
	PressureScore     int         `gorm:"not null;default:0" json:"pressure_score"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	Executives        []Executive `gorm:"foreignKey:CompanyID" json:"executives,omitempty"`
	Alerts            []Alert     `gorm:"foreignKey:CompanyID" json:"alerts,omitempty"`
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
