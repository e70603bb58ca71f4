package main

import (
	"log"
	"os"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/auth"
	"github.com/ecopledge-dev/ecopledge/internal/pledges"
	"github.com/ecopledge-dev/ecopledge/internal/realtime"
	"github.com/ecopledge-dev/ecopledge/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hub := realtime.NewHub()
	engine := pledges.NewEngine(hub)

	r := router.NewRouter(engine, hub)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "5000"
		log.Println("PORT not set, defaulting to 5000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
