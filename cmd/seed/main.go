package main

import (
	"fmt"
	"os"

	jamdb "github.com/openjam/jam-backend/internal/data/db"
	"github.com/openjam/jam-backend/internal/platform/logger"
	"github.com/openjam/jam-backend/internal/seed"
)

// Loads an event definition file and writes it to the database. Usage:
//
//	seed <event.yaml>
func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Println("usage: seed <event.yaml>")
		os.Exit(2)
	}
	path := os.Args[1]

	postgresService, err := jamdb.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}

	def, err := seed.LoadDefinition(path)
	if err != nil {
		log.Error("Could not load event definition", "path", path, "error", err)
		os.Exit(1)
	}

	loader := seed.NewLoader(postgresService.DB(), log)
	eventID, err := loader.Apply(def)
	if err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("Event seeded", "event_id", eventID, "name", def.Name)
}
