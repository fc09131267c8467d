package models

import "time"

// SystemAuditLog is a write-only trail of entity mutations. The application only
// ever inserts rows; nothing in the core logic reads them back.
type SystemAuditLog struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	EntityType     string    `gorm:"column:entity_type" json:"entity_type"`
	EntityID       string    `gorm:"column:entity_id" json:"entity_id"`
	ActionType     string    `gorm:"column:action_type" json:"action_type"`
	ActorID        string    `gorm:"column:actor_id" json:"actor_id"`
	ActorEmail     *string   `gorm:"column:actor_email" json:"actor_email,omitempty"`
	ActorRole      *string   `gorm:"column:actor_role" json:"actor_role,omitempty"`
	ChangesPayload *string   `gorm:"column:changes_payload" json:"changes_payload,omitempty"`
	IPAddress      string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent      string    `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SystemAuditLog) TableName() string {
	return "system_audit_logs"
}
