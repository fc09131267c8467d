package routes

import (
	"idea-incubator-api/controllers"
	"idea-incubator-api/middleware"
	"idea-incubator-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Inbound tracker events
			public.POST("/webhooks/tickets", controllers.TicketWebhook)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Idea Incubator API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.GET("/users", controllers.GetUsers)

			// Ideas
			ideas := protected.Group("/ideas")
			{
				ideas.GET("", controllers.GetIdeas)
				ideas.GET("/trending", controllers.GetTrendingIdeas)
				ideas.GET("/duplicates", controllers.CheckDuplicates)
				ideas.GET("/:id", controllers.GetIdea)
				ideas.GET("/:id/reviews", controllers.GetIdeaReviews)
				ideas.POST("", controllers.SubmitIdea)
				ideas.PUT("/:id", controllers.UpdateIdea)
				ideas.POST("/:id/vote", controllers.ToggleVote)
			}

			// Moderator actions
			moderator := protected.Group("/moderator")
			moderator.Use(middleware.RequireRole(models.RoleModerator, models.RoleAdmin))
			{
				moderator.POST("/ideas/:id/approve", controllers.ApproveIdea)
				moderator.POST("/ideas/:id/escalate", controllers.EscalateIdea)
				moderator.DELETE("/ideas/:id", controllers.DeleteIdea)
			}

			// Boardroom (executive review)
			boardroom := protected.Group("/boardroom")
			boardroom.Use(middleware.RequireRole(models.RoleExecutive, models.RoleAdmin))
			{
				boardroom.GET("/ideas", controllers.GetBoardroomIdeas)
				boardroom.POST("/ideas/:id/approve", controllers.ApproveStrategy)
				boardroom.POST("/ideas/:id/reject", controllers.RejectStrategy)
				boardroom.POST("/ideas/:id/launch", controllers.LaunchIdea)
				boardroom.GET("/ideas/:id/swot", controllers.GetIdeaSWOT)
			}

			// Quarterly goals
			goals := protected.Group("/goals")
			{
				goals.GET("", controllers.GetGoals)
				goals.GET("/:id/contributions", controllers.GetGoalContributions)
				goals.POST("/:id/contributions", controllers.AddGoalContribution)

				goals.GET("/all", middleware.RequireRole(models.RoleExecutive, models.RoleAdmin), controllers.GetAllGoals)
				goals.POST("", middleware.RequireRole(models.RoleExecutive, models.RoleAdmin), controllers.CreateGoal)
				goals.DELETE("/:id", middleware.RequireRole(models.RoleExecutive, models.RoleAdmin), controllers.DeleteGoal)
				goals.POST("/:id/missed", middleware.RequireRole(models.RoleAdmin), controllers.MarkGoalMissed)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/metrics", controllers.GetDashboardMetrics)
			}

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/integrations/jira", controllers.GetJiraConfig)
				admin.PUT("/integrations/jira", controllers.SaveJiraConfig)
				admin.PUT("/users/:id/role", controllers.UpdateUserRole)
			}
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
