package services

import (
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"idea-incubator-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "incubator.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name, role string) models.User {
	t.Helper()
	user := models.User{
		ID:    id,
		Name:  name,
		Email: id + "@test.local",
		Role:  role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return user
}

func seedIdea(t *testing.T, db *gorm.DB, title string, status models.IdeaStatus, submitterID string) models.Idea {
	t.Helper()
	idea := models.Idea{
		Title:       title,
		Description: "description for " + title,
		Category:    "General",
		TShirtSize:  "M",
		Status:      status,
		SubmitterID: submitterID,
	}
	if err := db.Create(&idea).Error; err != nil {
		t.Fatalf("seed idea %q: %v", title, err)
	}
	return idea
}
