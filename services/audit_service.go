package services

import (
	"encoding/json"
	"log"

	"idea-incubator-api/models"

	"gorm.io/gorm"
)

// AuditEntry describes one recorded action.
type AuditEntry struct {
	EntityType string
	EntityID   string
	ActionType string
	Actor      models.User
	Changes    interface{}
	IPAddress  string
	UserAgent  string
}

// AuditService appends rows to the write-only system audit log. Failures are
// logged and swallowed so auditing never blocks the mutation it describes.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Log(entry AuditEntry) {
	var payload *string
	if entry.Changes != nil {
		if raw, err := json.Marshal(entry.Changes); err == nil {
			value := string(raw)
			payload = &value
		}
	}

	row := models.SystemAuditLog{
		EntityType:     entry.EntityType,
		EntityID:       entry.EntityID,
		ActionType:     entry.ActionType,
		ActorID:        entry.Actor.ID,
		ChangesPayload: payload,
		IPAddress:      entry.IPAddress,
		UserAgent:      entry.UserAgent,
	}
	if entry.Actor.Email != "" {
		row.ActorEmail = &entry.Actor.Email
	}
	if entry.Actor.Role != "" {
		row.ActorRole = &entry.Actor.Role
	}

	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("Failed to write audit log: %v", err)
	}
}
