package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"depo-system/config"
	"depo-system/internal/database"
	"depo-system/internal/store"
	"depo-system/internal/syncjob"
)

func main() {
	once := flag.Bool("once", false, "run a single sync pass and exit")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	feed, err := syncjob.OpenFeed(cfg.Feed.Driver, cfg.Feed.DSN)
	if err != nil {
		log.Fatalf("Failed to open shipment feed: %v", err)
	}
	defer feed.Close()

	runner := syncjob.NewRunner(feed, store.NewGormStore(db), cfg.Feed.Cutoff)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		n, err := runner.RunOnce(ctx)
		if err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		log.Printf("Sync copied %d rows", n)
		return
	}

	log.Printf("Starting shipment sync every %s", cfg.Feed.Interval)
	runner.RunEvery(ctx, cfg.Feed.Interval)
}
