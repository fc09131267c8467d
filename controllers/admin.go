package controllers

import (
	"net/http"

	"idea-incubator-api/config"
	"idea-incubator-api/models"
	"idea-incubator-api/services"
	"idea-incubator-api/utils"

	"github.com/gin-gonic/gin"
)

// SaveJiraConfig upserts the ticketing credentials blob (ADMIN).
func SaveJiraConfig(c *gin.Context) {
	var req services.JiraConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewTicketSyncService(config.DB)
	if err := svc.SaveConfig(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Configuration saved"})
}

// GetJiraConfig returns the stored ticketing configuration with the token
// redacted.
func GetJiraConfig(c *gin.Context) {
	svc := services.NewTicketSyncService(config.DB)
	cfg, err := svc.LoadConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}

	if cfg.APIToken != "" {
		cfg.APIToken = "********"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"config":     cfg,
		"configured": cfg.URL != "",
	})
}

// UpdateUserRole is the only path that changes a user's role (ADMIN).
func UpdateUserRole(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Role {
	case models.RoleInnovator, models.RoleModerator, models.RoleExecutive, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ? AND deleted_at IS NULL", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	oldRole := user.Role
	if err := config.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	services.NewAuditService(config.DB).Log(services.AuditEntry{
		EntityType: "USER",
		EntityID:   user.ID,
		ActionType: "ROLE_CHANGE",
		Actor:      principal,
		Changes:    gin.H{"old_role": oldRole, "new_role": req.Role},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
