package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	var err error

	// Configure GORM
	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	debugSQL := strings.ToLower(os.Getenv("DEBUG_SQL"))

	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	// Switch the level back to logger.Info to print SQL statements again.
	logLevel := logger.Info
	if environment == "production" && debugSQL != "true" {
		logLevel = logger.Warn
	}

	config := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	switch driver {
	case "", "mysql":
		// Get database credentials from environment variables
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		dbDatabase := os.Getenv("DB_DATABASE")
		dbUsername := os.Getenv("DB_USERNAME")
		dbPassword := os.Getenv("DB_PASSWORD")

		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbUsername,
			dbPassword,
			dbHost,
			dbPort,
			dbDatabase,
		)

		DB, err = gorm.Open(mysql.Open(dsn), config)
	case "sqlite", "sqlite3":
		// Local/dev driver; DB_DSN defaults to a file next to the binary.
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = "incubator.db"
		}
		DB, err = gorm.Open(sqlite.Open(dsn), config)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", driver)
	}

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected successfully")
}
