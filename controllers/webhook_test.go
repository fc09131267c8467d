package controllers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"idea-incubator-api/config"
	"idea-incubator-api/models"
)

func setupWebhookRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("OPENAI_API_KEY", "")

	dsn := filepath.Join(t.TempDir(), "incubator.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	config.DB = db

	sqlDB, _ := db.DB()
	t.Cleanup(func() {
		config.DB = nil
		_ = sqlDB.Close()
	})

	router := gin.New()
	router.POST("/api/v1/webhooks/tickets", TicketWebhook)
	return router
}

func postWebhook(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/tickets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTicketWebhookCompletesMatchedEpic(t *testing.T) {
	router := setupWebhookRouter(t)

	submitter := models.User{Name: "Emma", Email: "emma@test.local", Role: models.RoleInnovator}
	if err := config.DB.Create(&submitter).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	key := "INNOV-7"
	idea := models.Idea{
		Title:       "Mobile App X",
		Description: "Track portfolios on the go",
		Category:    "General",
		TShirtSize:  "M",
		Status:      models.StatusInDev,
		SubmitterID: submitter.ID,
		TicketID:    &key,
	}
	if err := config.DB.Create(&idea).Error; err != nil {
		t.Fatalf("seed idea: %v", err)
	}

	rec := postWebhook(t, router, `{
		"webhookEvent": "jira:issue_updated",
		"issue": {
			"key": "INNOV-7",
			"fields": {
				"summary": "Mobile App X",
				"description": "Track portfolios on the go",
				"status": {"name": "Done"},
				"issuetype": {"name": "Epic"}
			}
		}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Fatalf("body = %s, want success", rec.Body.String())
	}
	// Without an API key the launch kit is the canned one.
	if !strings.Contains(rec.Body.String(), "Innovation delivered.") {
		t.Fatalf("body = %s, want a launch kit", rec.Body.String())
	}

	var reloaded models.Idea
	config.DB.First(&reloaded, "id = ?", idea.ID)
	if reloaded.Status != models.StatusG2MReady {
		t.Fatalf("status = %s, want G2M_READY", reloaded.Status)
	}

	for _, action := range []string{"TICKET_DONE", "GENERATE_G2M"} {
		var audits int64
		config.DB.Model(&models.SystemAuditLog{}).Where("action_type = ?", action).Count(&audits)
		if audits != 1 {
			t.Fatalf("%s audit rows = %d, want 1", action, audits)
		}
	}
}

func TestTicketWebhookIgnoresNonEpic(t *testing.T) {
	router := setupWebhookRouter(t)

	rec := postWebhook(t, router, `{
		"webhookEvent": "jira:issue_updated",
		"issue": {
			"key": "INNOV-7",
			"fields": {
				"status": {"name": "Done"},
				"issuetype": {"name": "Story"}
			}
		}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Ignored: not a completed Epic") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestTicketWebhookIgnoresIncompleteStatus(t *testing.T) {
	router := setupWebhookRouter(t)

	rec := postWebhook(t, router, `{
		"webhookEvent": "jira:issue_updated",
		"issue": {
			"key": "INNOV-7",
			"fields": {
				"status": {"name": "In Progress"},
				"issuetype": {"name": "Epic"}
			}
		}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Ignored") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestTicketWebhookUnmatchedKeyAcknowledged(t *testing.T) {
	router := setupWebhookRouter(t)

	rec := postWebhook(t, router, `{
		"webhookEvent": "jira:issue_updated",
		"issue": {
			"key": "INNOV-404",
			"fields": {
				"status": {"name": "Done"},
				"issuetype": {"name": "Epic"}
			}
		}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Idea not matched") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestTicketWebhookRejectsMalformedPayload(t *testing.T) {
	router := setupWebhookRouter(t)

	for _, body := range []string{
		`not json`,
		`{"webhookEvent": "jira:issue_updated"}`,
		`{"webhookEvent": "jira:issue_updated", "issue": {"key": "X"}}`,
	} {
		rec := postWebhook(t, router, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d for body %q, want 400", rec.Code, body)
		}
	}
}
