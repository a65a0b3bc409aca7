package repository

import (
	"context"

	"shoplist/internal/cache"
	"shoplist/internal/models"
	"shoplist/internal/observability"
	"shoplist/internal/ownership"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	ListVisible(ctx context.Context, userID string) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	UpsertGlobal(ctx context.Context, categories []models.Category) error
}

type categoryRepository struct {
	db     *gorm.DB
	cache  *cache.Store
	logger *observability.RepoLogger
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB, store *cache.Store) CategoryRepository {
	return &categoryRepository{
		db:     db,
		cache:  store,
		logger: observability.NewRepoLogger("categories"),
	}
}

// ListVisible returns the global categories plus those owned by userID.
func (r *categoryRepository) ListVisible(ctx context.Context, userID string) ([]models.Category, error) {
	categories := []models.Category{}
	filter := ownership.For(userID, true)

	err := r.cache.Aside(ctx, cache.CategoriesKey(userID), &categories, cache.CategoriesTTL, func() error {
		defer observability.TrackQuery("select", "categories")()
		if err := r.db.WithContext(ctx).
			Scopes(filter.Scope).
			Order("created_at ASC").
			Order("id ASC").
			Find(&categories).Error; err != nil {
			r.logger.LogError(ctx, err, "list_visible")
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts a user-owned category. Global categories only come from UpsertGlobal.
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.UserID == nil || *category.UserID == "" {
		return models.NewValidationError("category owner is required")
	}

	defer observability.TrackQuery("insert", "categories")()
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.cache.InvalidateCategories(ctx, *category.UserID)
	r.logger.LogCreate(ctx, map[string]interface{}{"category_id": category.ID, "user_id": *category.UserID})
	return nil
}

// UpsertGlobal inserts the shared categories, leaving existing rows untouched.
func (r *categoryRepository) UpsertGlobal(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	for i := range categories {
		categories[i].UserID = nil
	}

	defer observability.TrackQuery("upsert", "categories")()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&categories).Error; err != nil {
		r.logger.LogError(ctx, err, "upsert_global")
		return models.NewInternalError(err)
	}
	if err := r.cache.InvalidateAllCategories(ctx); err != nil {
		r.logger.LogError(ctx, err, "invalidate_categories")
	}
	return nil
}
