package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InfluenceLevel ranks a government contact's decision power.
type InfluenceLevel string

const (
	InfluenceLow              InfluenceLevel = "LOW"
	InfluenceMedium           InfluenceLevel = "MEDIUM"
	InfluenceHigh             InfluenceLevel = "HIGH"
	InfluenceKeyDecisionMaker InfluenceLevel = "KEY_DECISION_MAKER"
)

// GovernmentContact represents a contact inside an issuing authority.
type GovernmentContact struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Title         string         `gorm:"not null" json:"title"`
	Department    string         `gorm:"not null" json:"department"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	LinkedinURL   string         `json:"linkedin_url"`
	Role          string         `gorm:"not null" json:"role"`
	Influence     InfluenceLevel `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"influence"`
	Notes         string         `gorm:"type:text" json:"notes"`
	OpportunityID *string        `gorm:"type:varchar(36);index" json:"opportunity_id,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Opportunity   *Opportunity   `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`
	Procurements  []Procurement  `gorm:"many2many:procurement_contacts" json:"procurements,omitempty"`
}

// TableName specifies the table name for the GovernmentContact model.
func (GovernmentContact) TableName() string {
	return "government_contacts"
}

func (c *GovernmentContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
