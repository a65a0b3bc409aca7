// Package bootstrap wires the runtime dependencies shared by the server and the CLIs.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"shoplist/internal/cache"
	"shoplist/internal/config"
	"shoplist/internal/database"
	"shoplist/internal/repository"
	"shoplist/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDefaultCategories bool
}

// InitRuntime connects to DB and Redis and optionally seeds the default
// categories. The Redis client is nil when Redis is unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	var r *redis.Client
	if cfg.RedisURL != "" {
		r = cache.NewClient(cfg.RedisURL)
	}

	if opts.SeedDefaultCategories {
		categories := repository.NewCategoryRepository(db, cache.NewStore(r))
		if err := seed.Categories(ctx, categories); err != nil {
			return nil, nil, fmt.Errorf("failed to seed default categories: %w", err)
		}
		log.Println("default categories ensured")
	}

	return db, r, nil
}
