package controllers

import (
	"net/http"
	"strconv"
	"time"

	"idea-incubator-api/config"
	"idea-incubator-api/models"
	"idea-incubator-api/services"
	"idea-incubator-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type goalRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	TargetMetric string  `json:"target_metric" binding:"required"`
	TargetValue  int     `json:"target_value" binding:"required"`
	Quarter      int     `json:"quarter" binding:"required,min=1,max=4"`
	Year         int     `json:"year" binding:"required"`
	Category     *string `json:"category"`
	Deadline     *string `json:"deadline"` // RFC 3339 date, optional
}

// CreateGoal stores a new quarterly goal (EXECUTIVE/ADMIN).
func CreateGoal(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := models.QuarterlyGoal{
		Title:        req.Title,
		Description:  req.Description,
		TargetMetric: req.TargetMetric,
		TargetValue:  req.TargetValue,
		Quarter:      req.Quarter,
		Year:         req.Year,
		Category:     req.Category,
		CreatedByID:  principal.ID,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline format"})
			return
		}
		goal.Deadline = &deadline
	}

	if err := config.DB.Create(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "goal": goal})
}

// GetGoals lists goals for a quarter/year, defaulting to the current quarter.
func GetGoals(c *gin.Context) {
	now := time.Now()
	quarter, _ := strconv.Atoi(c.DefaultQuery("quarter", strconv.Itoa((int(now.Month())+2)/3)))
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))

	var goals []models.QuarterlyGoal
	if err := config.DB.
		Where("quarter = ? AND year = ?", quarter, year).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"goals":   goals,
		"quarter": quarter,
		"year":    year,
	})
}

// GetAllGoals lists every goal, newest quarter first (EXECUTIVE/ADMIN).
func GetAllGoals(c *gin.Context) {
	var goals []models.QuarterlyGoal
	if err := config.DB.
		Order("year DESC, quarter DESC, created_at DESC").
		Find(&goals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "goals": goals, "total": len(goals)})
}

// DeleteGoal removes a goal and its contributions (EXECUTIVE/ADMIN).
func DeleteGoal(c *gin.Context) {
	goalID := c.Param("id")

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goalID).Delete(&models.GoalContribution{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", goalID).Delete(&models.QuarterlyGoal{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Goal deleted"})
}

// MarkGoalMissed is the explicit admin-only MISSED transition.
func MarkGoalMissed(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	svc := services.NewGoalService(config.DB)
	goal, err := svc.MarkMissed(c.Param("id"), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
}

// AddGoalContribution appends a contribution and recomputes the goal's progress.
func AddGoalContribution(c *gin.Context) {
	principal, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	var req struct {
		Amount int    `json:"amount" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewGoalService(config.DB)
	contribution, err := svc.AddContribution(c.Param("id"), req.Amount, req.Notes, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var goal models.QuarterlyGoal
	if err := config.DB.Where("id = ?", c.Param("id")).First(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload goal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"contribution": contribution,
		"goal":         goal,
	})
}

// GetGoalContributions lists a goal's contributions, newest first.
func GetGoalContributions(c *gin.Context) {
	var contributions []models.GoalContribution
	if err := config.DB.
		Where("goal_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"contributions": contributions,
		"total":         len(contributions),
	})
}
