// Command main runs the database seeder for Ironlog.
package main

import (
	"flag"
	"log"

	"ironlog/internal/config"
	"ironlog/internal/database"
	"ironlog/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of lifters to create")
	numLogs := flag.Int("logs", 400, "Number of workout logs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d lifters, %d logs, clean=%v\n", *numUsers, *numLogs, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.LiftTypes(db); err != nil {
		log.Fatalf("❌ Built-in lift type seeding failed: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumLogs:     *numLogs,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: DemoPassword12!")
}
