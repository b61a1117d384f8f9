// Command expand-routines generates routine tasks for one date and exits.
// Useful for backfills and for environments without the cron scheduler.
//
// Usage:
//
//	expand-routines [-date YYYY-MM-DD]
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/daymate/backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	dateFlag := flag.String("date", "", "date to expand in YYYY-MM-DD (default: today, UTC)")
	flag.Parse()

	date := time.Now().UTC()
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *dateFlag, err)
		}
		date = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.ExpandRoutinesOnce(ctx, date); err != nil {
		log.Fatalf("expand routines: %v", err)
	}
}
