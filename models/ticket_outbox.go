package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outbox entry states.
const (
	OutboxPending = "PENDING"
	OutboxSent    = "SENT"
	OutboxFailed  = "FAILED"
)

// TicketOutbox records a pending external-ticket creation for an approved idea.
// The row is written in the same transaction as the status change; the dispatcher
// drains it afterwards so the transition never depends on the tracker being up.
type TicketOutbox struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	IdeaID       string    `gorm:"column:idea_id" json:"idea_id"`
	Status       string    `gorm:"column:status;default:PENDING" json:"status"`
	Attempts     int       `gorm:"column:attempts" json:"attempts"`
	LastError    *string   `gorm:"column:last_error" json:"last_error,omitempty"`
	TicketKey    *string   `gorm:"column:ticket_key" json:"ticket_key,omitempty"`
	TicketStatus *string   `gorm:"column:ticket_status" json:"ticket_status,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (o *TicketOutbox) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OutboxPending
	}
	return nil
}

func (TicketOutbox) TableName() string {
	return "ticket_outbox"
}
