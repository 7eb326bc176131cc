package main

import (
	"fmt"

	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/database"
)

// runDBCheck connects to DATABASE_URL and reports what it finds
func runDBCheck(cfg *config.Config) error {
	fmt.Println("Testing database connection...")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer db.Close()

	versionQuery := "SELECT sqlite_version()"
	if db.Type() == "postgres" {
		versionQuery = "SELECT version()"
	}

	var version string
	if err := db.QueryRow(versionQuery).Scan(&version); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	if len(version) > 50 {
		version = version[:50] + "..."
	}
	fmt.Printf("Connected to %s: %s\n", db.Type(), version)

	if err := db.CreateTables(); err != nil {
		fmt.Printf("Warning: could not create tables: %v\n", err)
		return nil
	}

	total, err := db.TotalScores()
	if err != nil {
		fmt.Printf("Warning: could not count scores: %v\n", err)
		return nil
	}
	fmt.Printf("Found %d submitted scores\n", total)
	return nil
}
