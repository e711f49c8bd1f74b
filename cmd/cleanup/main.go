package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fraternidade-care/treatment-service/internal/db"
	"github.com/fraternidade-care/treatment-service/internal/messaging"
	"github.com/fraternidade-care/treatment-service/internal/treatment"
)

func main() {
	log.Println("Treatment Record Cleanup Job - Starting")
	log.Println("Retention Policy: 5 years")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, purge events will be skipped: %v", err)
		publisher = nil
	}
	defer publisher.Close()

	cleanupService := treatment.NewCleanupService(database, publisher)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := cleanupService.GetExpiredRecordsCount(ctx)
	if err != nil {
		log.Fatalf("Failed to get expired records count: %v", err)
		os.Exit(1)
	}

	log.Printf("Found %d treatment records eligible for permanent deletion", count)

	if count == 0 {
		log.Println("No cleanup needed. Exiting.")
		os.Exit(0)
	}

	deletedCount, err := cleanupService.CleanupExpiredRecords(ctx)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
		os.Exit(1)
	}

	log.Printf("✓ Cleanup completed successfully: %d treatment records permanently deleted", deletedCount)
	log.Println("Cleanup Job - Finished")
}
