package main

import (
	"fmt"
	"log"
	"os"

	"carepro-gateway/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// Connect to database
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Query and display summary
	var result struct {
		TotalUsers   int `db:"total_users"`
		Carepros     int `db:"carepros"`
		AvailableNow int `db:"available_now"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE role = 'carepro') AS carepros,
			(SELECT COUNT(*) FROM carepro_prefs WHERE is_available) AS available_now
	`

	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	// Display results
	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Total accounts:          %d\n", result.TotalUsers)
	fmt.Printf("Carepros:                %d\n", result.Carepros)
	fmt.Printf("Available for offers:    %d\n", result.AvailableNow)
	fmt.Println("============================================================")
}
