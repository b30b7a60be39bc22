package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/naacportal/api/config"
	"github.com/naacportal/api/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	getEnv, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	var store database.Storage
	if getEnv.STORE_DRIVER == "local" {
		store, err = database.StartLocal(getEnv.DATA_DIR)
	} else {
		store, err = database.StartGORM()
	}
	if err != nil {
		log.Fatalf("Failed to start store: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	if err := database.NewSeeder(store).SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
}
