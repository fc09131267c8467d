package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a binary endorsement; at most one row per (idea, user) pair.
type Vote struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	IdeaID    string    `gorm:"column:idea_id;uniqueIndex:idx_votes_idea_user" json:"idea_id"`
	UserID    string    `gorm:"column:user_id;uniqueIndex:idx_votes_idea_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

func (Vote) TableName() string {
	return "votes"
}
