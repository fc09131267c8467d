package controllers

import (
	"net/http"
	"strconv"

	"idea-incubator-api/config"
	"idea-incubator-api/services"
	"idea-incubator-api/utils"

	"github.com/gin-gonic/gin"
)

// ToggleVote flips the caller's vote on an idea.
func ToggleVote(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	svc := services.NewIdeaService(config.DB, ideaScorer)
	voted, err := svc.ToggleVote(c.Param("id"), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "voted": voted})
}

// GetTrendingIdeas returns ideas ranked by vote count, newest first on ties.
func GetTrendingIdeas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	svc := services.NewIdeaService(config.DB, ideaScorer)
	ideas, err := svc.Trending(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ideas":   ideas,
		"total":   len(ideas),
	})
}
