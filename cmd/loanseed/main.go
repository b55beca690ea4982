// Command loanseed fills a loan store with random loan requests and decisions.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/lifecycle"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/config"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	envFile := flag.String("env-file", ".env", "path to an optional .env file")
	users := flag.Int("users", 50, "number of distinct users")
	books := flag.Int("books", 200, "number of distinct books")
	loans := flag.Int("loans", 1000, "number of loan requests to submit")
	seedValue := flag.Uint64("seed", 1, "random seed")
	csvPath := flag.String("csv", "", "write a CSV export of all loans to this path")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.Database, lifecycle.ObservabilityConfig{})
	if err != nil {
		log.Fatalf("Failed to open the loan store: %v", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("Error during shutdown: %v", closeErr)
		}
	}()

	service, err := lifecycle.NewService(store.Loans)
	if err != nil {
		log.Fatalf("Failed to create the lifecycle service: %v", err)
	}

	rng := rand.New(rand.NewPCG(*seedValue, *seedValue))

	result, err := seed(ctx, service, plan{Users: *users, Books: *books, Loans: *loans}, rng)
	if err != nil {
		log.Fatalf("Seeding failed after %d requests: %v", result.Requested, err)
	}

	log.Printf("Seeded %d loans (%d duplicates skipped): approved=%d rejected=%d returned=%d",
		result.Requested, result.Duplicates, result.Approved, result.Rejected, result.Returned)

	if *csvPath == "" {
		return
	}

	views, err := lifecycle.NewViews(store.Loans)
	if err != nil {
		log.Fatalf("Failed to create the loan views: %v", err)
	}

	export, err := views.Export(ctx, false)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if err := os.WriteFile(*csvPath, export.Data, 0o600); err != nil {
		log.Fatalf("Writing %s failed: %v", *csvPath, err)
	}

	log.Printf("Wrote %d rows to %s", export.Rows, *csvPath)
}
