// Seed script for demo users and sample ideas
// cmd/seed/main.go
package main

import (
	"idea-incubator-api/config"
	"idea-incubator-api/models"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func avatar(seed string) *string {
	url := "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
	return &url
}

var seedUsers = []models.User{
	{ID: "user-emp-001", Name: "Emma Employee", Email: "emma@company.com", Role: models.RoleInnovator, AvatarURL: avatar("Emma")},
	{ID: "user-emp-002", Name: "John Developer", Email: "john@company.com", Role: models.RoleInnovator, AvatarURL: avatar("John")},
	{ID: "user-emp-003", Name: "Lisa Designer", Email: "lisa@company.com", Role: models.RoleInnovator, AvatarURL: avatar("Lisa")},
	{ID: "user-mod-001", Name: "Mike Moderator", Email: "mike@company.com", Role: models.RoleModerator, AvatarURL: avatar("Mike")},
	{ID: "user-exec-001", Name: "Sarah CIO", Email: "sarah@company.com", Role: models.RoleExecutive, AvatarURL: avatar("Sarah")},
	{ID: "user-admin-001", Name: "Alice Admin", Email: "alice@company.com", Role: models.RoleAdmin, AvatarURL: avatar("Alice")},
}

var seedIdeas = []models.Idea{
	{
		Title:              "AI-Powered Retirement Planning Assistant",
		Description:        "Develop an AI chatbot that helps employees understand their retirement options, calculate projections, and make informed decisions about their 401(k) contributions.",
		Category:           "PRODUCT",
		TShirtSize:         "L",
		SubmitterID:        "user-emp-001",
		Status:             models.StatusModerated,
		BusinessValueScore: 85,
	},
	{
		Title:              "Mobile App for Real-Time Portfolio Tracking",
		Description:        "Create a mobile application that allows users to track their retirement portfolio performance in real-time with push notifications for significant market changes.",
		Category:           "PRODUCT",
		TShirtSize:         "M",
		SubmitterID:        "user-emp-002",
		Status:             models.StatusModerated,
		BusinessValueScore: 78,
	},
	{
		Title:              "Gamification of Financial Literacy",
		Description:        "Implement a gamified learning platform where employees earn badges and rewards for completing financial education modules and improving their retirement readiness.",
		Category:           "PROCESS",
		TShirtSize:         "M",
		SubmitterID:        "user-emp-003",
		Status:             models.StatusPendingModeration,
		BusinessValueScore: 72,
	},
	{
		Title:              "Automated Contribution Increase Program",
		Description:        "System that automatically increases employee 401(k) contributions by 1% annually unless they opt-out, helping them save more without thinking about it.",
		Category:           "PROCESS",
		TShirtSize:         "S",
		SubmitterID:        "user-emp-001",
		Status:             models.StatusModerated,
		BusinessValueScore: 90,
	},
	{
		Title:              "Virtual Reality Retirement Planning Workshops",
		Description:        "Use VR technology to create immersive retirement planning workshops where employees can visualize their future lifestyle based on different saving scenarios.",
		Category:           "PRODUCT",
		TShirtSize:         "XL",
		SubmitterID:        "user-emp-002",
		Status:             models.StatusPendingModeration,
		BusinessValueScore: 65,
	},
	{
		Title:              "Peer-to-Peer Financial Mentorship Platform",
		Description:        "Connect employees who are retirement-ready with those just starting out for mentorship and knowledge sharing about financial planning.",
		Category:           "CULTURE",
		TShirtSize:         "M",
		SubmitterID:        "user-emp-003",
		Status:             models.StatusModerated,
		BusinessValueScore: 68,
	},
	{
		Title:              "Green Investment Options",
		Description:        "Introduce ESG (Environmental, Social, Governance) focused investment funds for employees who want their retirement savings to align with their values.",
		Category:           "PRODUCT",
		TShirtSize:         "L",
		SubmitterID:        "user-emp-001",
		Status:             models.StatusModerated,
		BusinessValueScore: 75,
	},
	{
		Title:              "Instant Loan Approval System",
		Description:        "Streamline the 401(k) loan process with instant approval for qualified requests, reducing wait time from days to minutes.",
		Category:           "PROCESS",
		TShirtSize:         "M",
		SubmitterID:        "user-emp-002",
		Status:             models.StatusPendingModeration,
		BusinessValueScore: 82,
	},
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	if err := models.AutoMigrate(config.DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Shared demo password
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	// Upsert users by email
	for _, u := range seedUsers {
		var existing models.User
		err := config.DB.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			if err := config.DB.Model(&existing).Updates(map[string]interface{}{
				"name":       u.Name,
				"role":       u.Role,
				"avatar_url": u.AvatarURL,
			}).Error; err != nil {
				log.Printf("Failed to update user %s: %v\n", u.Email, err)
			}
			continue
		}

		u.Password = string(hashed)
		if err := config.DB.Create(&u).Error; err != nil {
			log.Printf("Failed to create user %s: %v\n", u.Email, err)
			continue
		}
		log.Printf("Created user: %s (%s)\n", u.Name, u.Role)
	}

	// Create sample ideas unless the same submitter already has the same title
	for _, idea := range seedIdeas {
		var count int64
		config.DB.Model(&models.Idea{}).
			Where("title = ? AND submitter_id = ?", idea.Title, idea.SubmitterID).
			Count(&count)
		if count > 0 {
			continue
		}

		if err := config.DB.Create(&idea).Error; err != nil {
			log.Printf("Failed to create idea %q: %v\n", idea.Title, err)
			continue
		}
		log.Printf("Created idea: %s\n", idea.Title)
	}

	log.Println("Seeding completed!")
}
