package controllers

import (
	"net/http"

	"idea-incubator-api/config"
	"idea-incubator-api/services"
	"idea-incubator-api/utils"

	"github.com/gin-gonic/gin"
)

// ApproveIdea moves an idea awaiting moderation to MODERATED.
func ApproveIdea(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	svc := services.NewLifecycleService(config.DB)
	idea, err := svc.Moderate(c.Param("id"), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "MODERATE",
		Actor:      principal,
		Changes:    gin.H{"status": idea.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}

// EscalateIdea pushes a moderated idea into executive review.
func EscalateIdea(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	svc := services.NewLifecycleService(config.DB)
	idea, err := svc.Escalate(c.Param("id"), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "ESCALATE",
		Actor:      principal,
		Changes:    gin.H{"status": idea.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "idea": idea})
}

// DeleteIdea is the moderator rejection: a hard delete, forbidden once the idea
// has reached development.
func DeleteIdea(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	ideaID := c.Param("id")
	svc := services.NewLifecycleService(config.DB)
	if err := svc.Reject(ideaID, principal); err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   ideaID,
		ActionType: "DELETE",
		Actor:      principal,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Idea deleted"})
}
