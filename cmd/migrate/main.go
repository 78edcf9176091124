package main

import (
	"log"
	"time"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := database.WaitForDatabase(cfg, 30, 2*time.Second); err != nil {
		log.Fatalf("database not reachable: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("Migrations applied")
}
