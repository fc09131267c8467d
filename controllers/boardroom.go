package controllers

import (
	"log"
	"net/http"

	"idea-incubator-api/config"
	"idea-incubator-api/models"
	"idea-incubator-api/services"
	"idea-incubator-api/utils"

	"github.com/gin-gonic/gin"
)

// GetBoardroomIdeas lists ideas waiting for an executive decision.
func GetBoardroomIdeas(c *gin.Context) {
	var ideas []models.Idea
	if err := config.DB.Preload("Submitter").Preload("Votes").
		Where("status = ?", models.StatusExecutiveReview).
		Order("business_value_score DESC").
		Find(&ideas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ideas":   ideas,
		"total":   len(ideas),
	})
}

// ApproveStrategy is the signed executive approval: review record, IN_DEV status,
// ticket sync via the outbox. Sync failure never reverts the status change.
func ApproveStrategy(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req struct {
		Sizing string `json:"sizing"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lifecycle := services.NewLifecycleService(config.DB)
	idea, outbox, err := lifecycle.ExecutiveApprove(c.Param("id"), req.Sizing, req.Notes, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// The approval is committed; draining the outbox applies the sync policy
	// (real ticket, demo reference, or sentinel) without touching the status.
	dispatcher := services.NewOutboxDispatcher(config.DB, services.NewTicketSyncService(config.DB))
	if err := dispatcher.Dispatch(outbox.ID); err != nil {
		log.Printf("Outbox dispatch failed for idea %s: %v", idea.ID, err)
	}

	// Re-read to pick up the ticket reference written by the dispatcher.
	if err := config.DB.Preload("Submitter").Where("id = ?", idea.ID).First(idea).Error; err == nil && idea.Submitter != nil {
		go services.NotifyDecision(*idea.Submitter, idea, models.DecisionApprove, req.Notes)
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "EXECUTIVE_APPROVE",
		Actor:      principal,
		Changes:    gin.H{"status": idea.Status, "ticket_id": idea.TicketID},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}

// RejectStrategy records the REJECT review and returns the idea to DRAFT.
func RejectStrategy(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lifecycle := services.NewLifecycleService(config.DB)
	idea, err := lifecycle.ExecutiveReject(c.Param("id"), req.Reason, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Preload("Submitter").Where("id = ?", idea.ID).First(idea).Error; err == nil && idea.Submitter != nil {
		go services.NotifyDecision(*idea.Submitter, idea, models.DecisionReject, req.Reason)
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "EXECUTIVE_REJECT",
		Actor:      principal,
		Changes:    gin.H{"status": idea.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}

// LaunchIdea moves a go-to-market-ready idea into the terminal LAUNCHED state.
func LaunchIdea(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	lifecycle := services.NewLifecycleService(config.DB)
	idea, err := lifecycle.Launch(c.Param("id"), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "LAUNCH",
		Actor:      principal,
		Changes:    gin.H{"status": idea.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}

// GetIdeaSWOT returns a generated strategic analysis for one idea.
func GetIdeaSWOT(c *gin.Context) {
	var idea models.Idea
	if err := config.DB.Where("id = ?", c.Param("id")).First(&idea).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea not found"})
		return
	}

	swot := services.NewAIService().GenerateSWOT(idea.Description)
	c.JSON(http.StatusOK, gin.H{"success": true, "swot": swot})
}

// GetIdeaReviews returns the decision history of one idea, newest first.
func GetIdeaReviews(c *gin.Context) {
	var reviews []models.Review
	if err := config.DB.Preload("Reviewer").
		Where("idea_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}
