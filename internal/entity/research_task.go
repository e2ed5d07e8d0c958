package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a research task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority ranks a research task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ResearchTask represents a follow-up task, optionally tied to an
// opportunity.
type ResearchTask struct {
	ID            string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string       `gorm:"type:varchar(36);index;not null" json:"user_id"`
	OpportunityID *string      `gorm:"type:varchar(36);index" json:"opportunity_id,omitempty"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Priority      TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status        TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ResearchTask model.
func (ResearchTask) TableName() string {
	return "research_tasks"
}

func (t *ResearchTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
