package main

import (
	"log"

	"github.com/joho/godotenv"

	"edakit/adapters/sqlite"
	"edakit/internal/config"
	"edakit/ports"
	"edakit/service"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rules, err := config.LoadRules(appConfig.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load quality rules: %v", err)
	}

	var history ports.HistoryRepository
	if appConfig.History.Path != "" {
		db, err := sqlite.Open(appConfig.History.Path)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer db.Close()
		history = sqlite.NewHistoryRepository(db)
	}

	server := service.NewServer(appConfig.Server, rules, history)
	if err := server.Run(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
