package config

import (
	"fmt"
	"log"
	"os"

	"github.com/zelphyx/Glucoin-AI/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init loads .env and, when DB_HOST is set, opens Postgres for the chat
// history store. The detection and chat pipelines themselves are stateless,
// so a missing database only disables history.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	if os.Getenv("DB_HOST") == "" {
		log.Println("DB_HOST not set, chat history disabled")
		return
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.ChatMessage{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	DB = db
}
