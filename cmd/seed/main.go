// Command seed populates the local store with demo accounts and posts.
package main

import (
	"context"
	"flag"
	"log"

	"trinethra/internal/config"
	"trinethra/internal/observability"
	"trinethra/internal/seed"
	"trinethra/internal/store"
)

func main() {
	numUsers := flag.Int("users", 5, "Number of demo accounts to create")
	numPosts := flag.Int("posts", 20, "Number of demo posts to create")
	shouldClean := flag.Bool("clean", true, "Clear the store before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store demo passwords unhashed (faster)")
	flag.Parse()

	log.Println("🌱 Store Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.OpenSQLite(cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	ctx := observability.WithCorrelationID(context.Background(), observability.GenerateCorrelationID())
	s := seed.NewSeeder(st, seed.Options{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.Clear(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(ctx, *numUsers, *numPosts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✅ Seeded %d users and %d posts (password for all: %s)", *numUsers, *numPosts, seed.DemoPassword)
}
