package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OpportunityStatus is the lifecycle stage of a regulatory opportunity.
type OpportunityStatus string

const (
	OpportunityStatusIdentified  OpportunityStatus = "IDENTIFIED"
	OpportunityStatusResearching OpportunityStatus = "RESEARCHING"
	OpportunityStatusPositioning OpportunityStatus = "POSITIONING"
	OpportunityStatusPursuing    OpportunityStatus = "PURSUING"
	OpportunityStatusWon         OpportunityStatus = "WON"
	OpportunityStatusLost        OpportunityStatus = "LOST"
	OpportunityStatusArchived    OpportunityStatus = "ARCHIVED"
)

// OpportunityPriority is the manual prioritization of an opportunity.
type OpportunityPriority string

const (
	PriorityLow      OpportunityPriority = "LOW"
	PriorityMedium   OpportunityPriority = "MEDIUM"
	PriorityHigh     OpportunityPriority = "HIGH"
	PriorityCritical OpportunityPriority = "CRITICAL"
)

// OrdinalLevel is a four-step ordinal scale used for revenue potential and
// market gap.
type OrdinalLevel string

const (
	LevelLow      OrdinalLevel = "LOW"
	LevelMedium   OrdinalLevel = "MEDIUM"
	LevelHigh     OrdinalLevel = "HIGH"
	LevelVeryHigh OrdinalLevel = "VERY_HIGH"
)

// CompetitionLevel is the ordinal scale of competitive saturation.
type CompetitionLevel string

const (
	CompetitionNone      CompetitionLevel = "NONE"
	CompetitionLow       CompetitionLevel = "LOW"
	CompetitionMedium    CompetitionLevel = "MEDIUM"
	CompetitionHigh      CompetitionLevel = "HIGH"
	CompetitionSaturated CompetitionLevel = "SATURATED"
)

// Opportunity represents a regulatory opportunity being tracked.
type Opportunity struct {
	ID                     string               `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID                 string               `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Title                  string               `gorm:"not null" json:"title"`
	Description            string               `gorm:"type:text;not null" json:"description"`
	RegulationType         string               `gorm:"not null" json:"regulation_type"`
	RegulationReference    string               `json:"regulation_reference"`
	ImplementationDate     *time.Time           `json:"implementation_date,omitempty"`
	DeadlineDate           *time.Time           `json:"deadline_date,omitempty"`
	LegislativeStage       string               `json:"legislative_stage"`
	LastLegislativeUpdate  *time.Time           `json:"last_legislative_update,omitempty"`
	TargetIndustries       pq.StringArray       `gorm:"type:text[]" json:"target_industries"`
	AffectedCountries      pq.StringArray       `gorm:"type:text[]" json:"affected_countries"`
	EstimatedMarketSize    *float64             `json:"estimated_market_size,omitempty"`
	ComplianceRequirements string               `gorm:"type:text" json:"compliance_requirements"`
	Status                 OpportunityStatus    `gorm:"type:varchar(20);not null;default:'IDENTIFIED'" json:"status"`
	Priority               OpportunityPriority  `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	RevenuePotential       OrdinalLevel         `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"revenue_potential"`
	MarketGap              OrdinalLevel         `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"market_gap"`
	CompetitionLevel       CompetitionLevel     `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"competition_level"`
	LeadTimeMonths         *int                 `json:"lead_time_months,omitempty"`
	OpportunityScore       int                  `gorm:"not null;default:0" json:"opportunity_score"`
	CreatedAt              time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	Competitors            []CompetitorActivity `gorm:"foreignKey:OpportunityID" json:"competitors,omitempty"`
	Notes                  []Note               `gorm:"foreignKey:OpportunityID" json:"notes,omitempty"`
	Documents              []Document           `gorm:"foreignKey:OpportunityID" json:"documents,omitempty"`
	GovernmentContacts     []GovernmentContact  `gorm:"foreignKey:OpportunityID" json:"government_contacts,omitempty"`
	ResearchTasks          []ResearchTask       `gorm:"foreignKey:OpportunityID" json:"research_tasks,omitempty"`
	Alerts                 []Alert              `gorm:"foreignKey:OpportunityID" json:"alerts,omitempty"`
}

// TableName specifies the table name for the Opportunity model.
func (Opportunity) TableName() string {
	return "opportunities"
}

func (o *Opportunity) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Note is a free-form note attached to an opportunity.
type Note struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OpportunityID string    `gorm:"type:varchar(36);index;not null" json:"opportunity_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// Document is a reference document attached to an opportunity or a
// procurement.
type Document struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OpportunityID *string   `gorm:"type:varchar(36);index" json:"opportunity_id,omitempty"`
	ProcurementID *string   `gorm:"type:varchar(36);index" json:"procurement_id,omitempty"`
	Title         string    `gorm:"not null" json:"title"`
	Type          string    `json:"type"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
