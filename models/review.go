package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review decisions.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// Review is an append-only executive decision record for an idea. Rows are never
// updated or deleted; repeated reviews form the idea's decision history.
type Review struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	IdeaID     string    `gorm:"column:idea_id" json:"idea_id"`
	ReviewerID string    `gorm:"column:reviewer_id" json:"reviewer_id"`
	Role       string    `gorm:"column:role" json:"role"`
	Decision   string    `gorm:"column:decision" json:"decision"`
	Comments   string    `gorm:"column:comments" json:"comments"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}
