package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/auth"
	"github.com/studyhelper-dev/studyhelper/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DATABASE_URL")

	if driver == "sqlite" && dsn == "" {
		dsn = "file:studyhelper.db?_pragma=foreign_keys(1)"
	}

	if err := db.ConnectDatabase(driver, dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
