package main

import (
	"car_rental/internal/config" // Custom import path (Config)
	"car_rental/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Create or update the schema
}
