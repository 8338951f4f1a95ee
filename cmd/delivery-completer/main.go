package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	orderpostgres "github.com/shopfront/order-api/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/shopfront/order-api/internal/platform/postgres"
)

const defaultCompleteAfterDays = 7

// Marks deliveries of sufficiently old orders as completed. Meant to run on
// a schedule outside the API process.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot complete deliveries")
	}

	cutoff := time.Now().AddDate(0, 0, -completeAfterDaysFromEnv())
	repo := orderpostgres.NewRepository(db)
	completed, err := repo.CompleteDeliveriesBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to complete deliveries: %v", err)
	}
	log.Printf("delivery completion finished: %d deliveries marked COMP (orders before %s)", completed, cutoff.Format(time.RFC3339))
}

func completeAfterDaysFromEnv() int {
	raw := strings.TrimSpace(os.Getenv("DELIVERY_COMPLETE_AFTER_DAYS"))
	if raw == "" {
		return defaultCompleteAfterDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultCompleteAfterDays
	}
	return days
}
