package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal statuses.
const (
	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"
	GoalStatusMissed    = "MISSED"
)

// QuarterlyGoal is a numeric target tracked per fiscal quarter. CurrentProgress is
// denormalized: it must always equal the sum of the goal's contribution amounts and
// is rewritten after every contribution insert.
type QuarterlyGoal struct {
	ID              string     `gorm:"primaryKey;column:id" json:"id"`
	Title           string     `gorm:"column:title" json:"title"`
	Description     string     `gorm:"column:description" json:"description"`
	TargetMetric    string     `gorm:"column:target_metric" json:"target_metric"`
	TargetValue     int        `gorm:"column:target_value" json:"target_value"`
	CurrentProgress int        `gorm:"column:current_progress" json:"current_progress"`
	Quarter         int        `gorm:"column:quarter" json:"quarter"`
	Year            int        `gorm:"column:year" json:"year"`
	Status          string     `gorm:"column:status;default:ACTIVE" json:"status"`
	Category        *string    `gorm:"column:category" json:"category,omitempty"`
	Deadline        *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedByID     string     `gorm:"column:created_by_id" json:"created_by_id"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Contributions []GoalContribution `gorm:"foreignKey:GoalID" json:"contributions,omitempty"`
}

func (g *QuarterlyGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Status == "" {
		g.Status = GoalStatusActive
	}
	return nil
}

func (QuarterlyGoal) TableName() string {
	return "quarterly_goals"
}

// GoalContribution is an append-only progress entry against a quarterly goal.
type GoalContribution struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	GoalID          string    `gorm:"column:goal_id" json:"goal_id"`
	ContributorID   string    `gorm:"column:contributor_id" json:"contributor_id"`
	ContributorName string    `gorm:"column:contributor_name" json:"contributor_name"`
	ContributorRole string    `gorm:"column:contributor_role" json:"contributor_role"`
	Amount          int       `gorm:"column:amount" json:"amount"`
	Notes           string    `gorm:"column:notes" json:"notes"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (c *GoalContribution) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (GoalContribution) TableName() string {
	return "goal_contributions"
}
