package main

import (
	"log"
	"os"

	"github.com/aftermeet-app/aftermeet/internal/infrastructure/database"
	"github.com/aftermeet-app/aftermeet/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	run := database.Migrate
	if len(os.Args) > 1 && os.Args[1] == "down" {
		run = database.Rollback
	}
	if err := run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
