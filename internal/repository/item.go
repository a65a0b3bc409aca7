package repository

import (
	"context"
	"errors"

	"shoplist/internal/models"
	"shoplist/internal/observability"
	"shoplist/internal/ownership"

	"gorm.io/gorm"
)

// ItemRepository defines persistence operations for shopping items. Every
// method is scoped to the owner; rows of other users behave as absent.
type ItemRepository interface {
	ListByOwner(ctx context.Context, userID string) ([]models.ShoppingItem, error)
	GetOwned(ctx context.Context, userID, id string) (*models.ShoppingItem, error)
	Create(ctx context.Context, item *models.ShoppingItem) error
	UpdateOwned(ctx context.Context, userID, id string, updates map[string]interface{}) error
	DeleteOwned(ctx context.Context, userID, id string) error
}

type itemRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewItemRepository returns a new ItemRepository implementation.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{
		db:     db,
		logger: observability.NewRepoLogger("shopping_items"),
	}
}

func (r *itemRepository) ListByOwner(ctx context.Context, userID string) ([]models.ShoppingItem, error) {
	defer observability.TrackQuery("select", "shopping_items")()

	items := []models.ShoppingItem{}
	if err := r.db.WithContext(ctx).
		Scopes(ownership.For(userID, false).Scope).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		r.logger.LogError(ctx, err, "list_by_owner")
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *itemRepository) GetOwned(ctx context.Context, userID, id string) (item *models.ShoppingItem, err error) {
	defer observability.TrackQuery("select", "shopping_items")()
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "GetOwned", "shopping_items")
	defer func() { observability.End(span, err) }()

	var found models.ShoppingItem
	if err := r.db.WithContext(ctx).
		Scopes(ownership.For(userID, false).Scope).
		Where("id = ?", id).
		First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Item", id)
		}
		r.logger.LogError(ctx, err, "get_owned")
		return nil, models.NewInternalError(err)
	}
	return &found, nil
}

func (r *itemRepository) Create(ctx context.Context, item *models.ShoppingItem) error {
	defer observability.TrackQuery("insert", "shopping_items")()

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{"item_id": item.ID, "user_id": item.UserID})
	return nil
}

// UpdateOwned applies updates in a single statement filtered by owner and id.
func (r *itemRepository) UpdateOwned(ctx context.Context, userID, id string, updates map[string]interface{}) (err error) {
	defer observability.TrackQuery("update", "shopping_items")()
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "UpdateOwned", "shopping_items")
	defer func() { observability.End(span, err) }()

	res := r.db.WithContext(ctx).
		Model(&models.ShoppingItem{}).
		Scopes(ownership.For(userID, false).Scope).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		r.logger.LogError(ctx, res.Error, "update_owned")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Item", id)
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"item_id": id, "user_id": userID})
	return nil
}

func (r *itemRepository) DeleteOwned(ctx context.Context, userID, id string) error {
	defer observability.TrackQuery("delete", "shopping_items")()

	res := r.db.WithContext(ctx).
		Scopes(ownership.For(userID, false).Scope).
		Where("id = ?", id).
		Delete(&models.ShoppingItem{})
	if res.Error != nil {
		r.logger.LogError(ctx, res.Error, "delete_owned")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Item", id)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"item_id": id, "user_id": userID})
	return nil
}
