package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcurementStatus is the lifecycle state of a tender.
type ProcurementStatus string

const (
	ProcurementStatusUpcoming  ProcurementStatus = "UPCOMING"
	ProcurementStatusOpen      ProcurementStatus = "OPEN"
	ProcurementStatusClosed    ProcurementStatus = "CLOSED"
	ProcurementStatusAwarded   ProcurementStatus = "AWARDED"
	ProcurementStatusCancelled ProcurementStatus = "CANCELLED"
)

// Procurement represents a government tender being tracked.
type Procurement struct {
	ID                 string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID             string              `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Title              string              `gorm:"not null" json:"title"`
	Description        string              `gorm:"type:text;not null" json:"description"`
	ProcurementNumber  string              `json:"procurement_number"`
	Region             string              `gorm:"not null" json:"region"`
	IssuingAuthority   string              `gorm:"not null" json:"issuing_authority"`
	PublishDate        time.Time           `gorm:"not null" json:"publish_date"`
	SubmissionDeadline *time.Time          `json:"submission_deadline,omitempty"`
	EstimatedValue     *float64            `json:"estimated_value,omitempty"`
	Currency           string              `json:"currency"`
	Status             ProcurementStatus   `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	ServiceGap         bool                `gorm:"not null;default:false" json:"service_gap"`
	Bottleneck         bool                `gorm:"not null;default:false" json:"bottleneck"`
	GapAnalysis        string              `gorm:"type:text" json:"gap_analysis"`
	ProposalDraft      string              `gorm:"type:text" json:"proposal_draft"`
	WinProbability     *int                `json:"win_probability,omitempty"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	Contacts           []GovernmentContact `gorm:"many2many:procurement_contacts" json:"contacts,omitempty"`
	Documents          []Document          `gorm:"foreignKey:ProcurementID" json:"documents,omitempty"`
}

// TableName specifies the table name for the Procurement model.
func (Procurement) TableName() string {
	return "procurements"
}

func (p *Procurement) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
