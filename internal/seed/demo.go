package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"time"

	"shoplist/internal/auth"
	"shoplist/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemoPassword is the password of every generated demo user.
const DemoPassword = "password123"

// Options configuration for the demo seeder
type Options struct {
	NumUsers     int
	ItemsPerUser int
	ShouldClean  bool
}

var usernameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Demo creates fake users with shopping items spread across the default
// categories. It returns the created users.
func Demo(ctx context.Context, db *gorm.DB, hasher *auth.PasswordHasher, opts Options) ([]models.User, error) {
	log.Printf("🌱 Seeding %d demo users with %d items each...", opts.NumUsers, opts.ItemsPerUser)

	if opts.ShouldClean {
		if err := Clean(ctx, db); err != nil {
			return nil, err
		}
	}

	categories, err := DefaultCategories()
	if err != nil {
		return nil, err
	}

	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	faker := gofakeit.New(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]models.User, 0, opts.NumUsers)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < opts.NumUsers; i++ {
			user := models.User{
				ID:           uuid.NewString(),
				Username:     demoUsername(faker.Username(), i),
				PasswordHash: hash,
				CreatedAt:    time.Now().UTC(),
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create demo user %s: %w", user.Username, err)
			}

			items := make([]models.ShoppingItem, 0, opts.ItemsPerUser)
			for j := 0; j < opts.ItemsPerUser; j++ {
				created := time.Now().UTC().Add(-time.Duration(r.Intn(14*24)) * time.Hour)
				items = append(items, models.ShoppingItem{
					ID:          uuid.NewString(),
					UserID:      user.ID,
					Description: demoDescription(faker),
					CategoryID:  categories[r.Intn(len(categories))].ID,
					IsPurchased: r.Intn(4) == 0,
					CreatedAt:   created,
					UpdatedAt:   created,
				})
			}
			if len(items) > 0 {
				if err := tx.CreateInBatches(items, 100).Error; err != nil {
					return fmt.Errorf("create demo items: %w", err)
				}
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✓ %d demo users created (password %q)", len(users), DemoPassword)
	return users, nil
}

// Clean removes all items, user-owned categories and users. Shared
// categories are kept.
func Clean(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ShoppingItem{}).Error; err != nil {
			return fmt.Errorf("clean items: %w", err)
		}
		if err := tx.Where("user_id IS NOT NULL").Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("clean categories: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clean users: %w", err)
		}
		return nil
	})
}

// demoUsername makes a faker username valid and unique within one run.
func demoUsername(base string, i int) string {
	name := usernameUnsafe.ReplaceAllString(base, "")
	if len(name) > 20 {
		name = name[:20]
	}
	if name == "" {
		name = "shopper"
	}
	return fmt.Sprintf("%s_%d", name, i)
}

func demoDescription(faker *gofakeit.Faker) string {
	switch faker.Number(0, 2) {
	case 0:
		return faker.Fruit()
	case 1:
		return faker.Vegetable()
	default:
		return faker.Snack()
	}
}
