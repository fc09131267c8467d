package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the API relies on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Idea{},
		&Vote{},
		&Review{},
		&QuarterlyGoal{},
		&GoalContribution{},
		&IntegrationConfig{},
		&SystemAuditLog{},
		&TicketOutbox{},
	)
}
