package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"jamesfarrell.me/youtube-captions/internal/api"
	"jamesfarrell.me/youtube-captions/internal/config"
	"jamesfarrell.me/youtube-captions/internal/storage/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	database, err := db.NewConnection(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()
	log.Printf("Connected to %s", db.MaskDatabaseURL(cfg.DatabaseURL))

	// Initialize router with dependencies
	router := api.NewRouter(cfg, database)

	// Start the HTTP server
	log.Printf("Starting HTTP server on :%s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
