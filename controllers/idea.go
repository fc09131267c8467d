package controllers

import (
	"net/http"

	"idea-incubator-api/config"
	"idea-incubator-api/models"
	"idea-incubator-api/services"
	"idea-incubator-api/utils"

	"github.com/gin-gonic/gin"
)

// ideaScorer is swappable so tests and a future scoring model can replace the
// random placeholder.
var ideaScorer services.ScoreFunc = services.DefaultScorer

// SubmitIdea creates a new idea in PENDING_MODERATION.
func SubmitIdea(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req services.IdeaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewIdeaService(config.DB, ideaScorer)
	idea, err := svc.Submit(req, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "SUBMIT",
		Actor:      principal,
		Changes:    gin.H{"title": idea.Title, "status": idea.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, gin.H{"success": true, "idea": idea})
}

// CheckDuplicates previews possible duplicates for a candidate text.
func CheckDuplicates(c *gin.Context) {
	svc := services.NewIdeaService(config.DB, ideaScorer)
	matches, err := svc.FindDuplicates(c.Query("text"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check duplicates"})
		return
	}
	if matches == nil {
		matches = []services.DuplicateMatch{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// UpdateIdea edits content fields of an existing idea.
func UpdateIdea(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req services.IdeaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewIdeaService(config.DB, ideaScorer)
	idea, err := svc.Update(c.Param("id"), req, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "UPDATE",
		Actor:      principal,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}

// GetIdeas lists ideas, optionally filtered by status.
func GetIdeas(c *gin.Context) {
	query := config.DB.Preload("Submitter").Preload("Votes").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		s := models.IdeaStatus(status)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		if s.Normalize() == models.StatusPendingModeration {
			query = query.Where("status IN ?", []models.IdeaStatus{models.StatusPendingModeration, models.StatusSubmitted})
		} else {
			query = query.Where("status = ?", s)
		}
	}

	var ideas []models.Idea
	if err := query.Find(&ideas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ideas":   ideas,
		"total":   len(ideas),
	})
}

// GetIdea returns one idea with its submitter and votes.
func GetIdea(c *gin.Context) {
	var idea models.Idea
	if err := config.DB.Preload("Submitter").Preload("Votes").
		Where("id = ?", c.Param("id")).
		First(&idea).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}
