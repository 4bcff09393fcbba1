package main

import (
	"log"
	"os"

	"edakit/ui"
)

func main() {
	port := os.Getenv("UI_PORT")
	if port == "" {
		port = "8081"
	}
	reportsDir := os.Getenv("REPORT_OUT_DIR")
	if reportsDir == "" {
		reportsDir = "reports"
	}

	app, err := ui.NewApp(ui.Config{Port: port, ReportsDir: reportsDir})
	if err != nil {
		log.Fatalf("Failed to initialize report browser: %v", err)
	}
	if err := app.Run(":" + port); err != nil {
		log.Fatalf("Report browser stopped: %v", err)
	}
}
