// Command main seeds default categories and optional demo data.
package main

import (
	"context"
	"flag"
	"log"

	"shoplist/internal/auth"
	"shoplist/internal/config"
	"shoplist/internal/database"
	"shoplist/internal/repository"
	"shoplist/internal/seed"
)

func main() {
	numUsers := flag.Int("demo-users", 0, "Number of demo users to create (0 seeds categories only)")
	itemsPerUser := flag.Int("items", 10, "Shopping items per demo user")
	shouldClean := flag.Bool("clean", false, "Delete users, items and owned categories before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := seed.Categories(ctx, repository.NewCategoryRepository(db, nil)); err != nil {
		log.Fatalf("❌ Default category seeding failed: %v", err)
	}
	log.Println("Default categories are in place")

	if *numUsers <= 0 {
		if *shouldClean {
			if err := seed.Clean(ctx, db); err != nil {
				log.Fatalf("❌ Cleanup failed: %v", err)
			}
		}
		return
	}

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v", err)
	}

	users, err := seed.Demo(ctx, db, hasher, seed.Options{
		NumUsers:     *numUsers,
		ItemsPerUser: *itemsPerUser,
		ShouldClean:  *shouldClean,
	})
	if err != nil {
		log.Fatalf("❌ Demo seeding failed: %v", err)
	}

	log.Printf("✨ Created %d demo users", len(users))
	log.Printf("📧 All demo users have the password: %s", seed.DemoPassword)
}
