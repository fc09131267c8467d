package controllers

import (
	"net/http"
	"time"

	"idea-incubator-api/config"
	"idea-incubator-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardMetrics returns the full-scan aggregate view: status histogram,
// funnel, velocity, approval rate, leaderboard and the 7-day submission trend.
func GetDashboardMetrics(c *gin.Context) {
	svc := services.NewMetricsService(config.DB)
	metrics, err := svc.DashboardMetrics(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"metrics": metrics,
	})
}
