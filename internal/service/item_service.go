package service

import (
	"context"
	"strings"
	"time"

	"shoplist/internal/models"
	"shoplist/internal/notifications"
	"shoplist/internal/observability"
	"shoplist/internal/repository"
	"shoplist/internal/validation"

	"github.com/google/uuid"
)

// ItemService applies the owner rule to every shopping item operation.
type ItemService struct {
	repo   repository.ItemRepository
	events EventPublisher
	newID  func() string
	now    func() time.Time
}

type CreateItemInput struct {
	UserID      string
	Description string
	PhotoURL    *string
	CategoryID  string
}

// UpdateItemInput carries a partial update. Nil fields are left unchanged;
// an empty PhotoURL removes the photo. The purchased flag is not editable
// here: it only flips through Toggle.
type UpdateItemInput struct {
	UserID      string
	ItemID      string
	Description *string
	PhotoURL    *string
	CategoryID  *string
}

func NewItemService(repo repository.ItemRepository, events EventPublisher) *ItemService {
	return &ItemService{
		repo:   repo,
		events: events,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// List returns the caller's items, newest first.
func (s *ItemService) List(ctx context.Context, userID string) ([]models.ShoppingItem, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.ShoppingItem, error) {
	description := strings.TrimSpace(in.Description)
	if err := validation.ValidateDescription(description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	if err := validation.ValidateCategoryID(categoryID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	now := s.now().UTC()
	item := &models.ShoppingItem{
		ID:          s.newID(),
		UserID:      in.UserID,
		Description: description,
		PhotoURL:    normalizePhotoURL(in.PhotoURL),
		CategoryID:  categoryID,
		IsPurchased: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	observability.ItemMutations.WithLabelValues("create").Inc()
	publish(ctx, s.events, in.UserID, &item.UserID, notifications.EventItemCreated, item)
	return item, nil
}

// Update applies the non-nil fields of in to an item the caller owns.
func (s *ItemService) Update(ctx context.Context, in UpdateItemInput) (*models.ShoppingItem, error) {
	updates := map[string]interface{}{}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if err := validation.ValidateDescription(description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["description"] = description
	}
	if in.CategoryID != nil {
		categoryID := strings.TrimSpace(*in.CategoryID)
		if err := validation.ValidateCategoryID(categoryID); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		updates["category_id"] = categoryID
	}
	if in.PhotoURL != nil {
		updates["photo_url"] = normalizePhotoURL(in.PhotoURL)
	}
	updates["updated_at"] = s.now().UTC()

	if err := s.repo.UpdateOwned(ctx, in.UserID, in.ItemID, updates); err != nil {
		return nil, err
	}

	item, err := s.repo.GetOwned(ctx, in.UserID, in.ItemID)
	if err != nil {
		return nil, err
	}

	observability.ItemMutations.WithLabelValues("update").Inc()
	publish(ctx, s.events, in.UserID, &item.UserID, notifications.EventItemUpdated, item)
	return item, nil
}

// Toggle flips is_purchased. The read and the write both carry the owner
// filter; concurrent toggles are last-write-wins.
func (s *ItemService) Toggle(ctx context.Context, userID, itemID string) (*models.ShoppingItem, error) {
	item, err := s.repo.GetOwned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	next := !item.IsPurchased
	now := s.now().UTC()
	if err := s.repo.UpdateOwned(ctx, userID, itemID, map[string]interface{}{
		"is_purchased": next,
		"updated_at":   now,
	}); err != nil {
		return nil, err
	}
	item.IsPurchased = next
	item.UpdatedAt = now

	observability.ItemMutations.WithLabelValues("toggle").Inc()
	publish(ctx, s.events, userID, &item.UserID, notifications.EventItemToggled, item)
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, userID, itemID string) error {
	if err := s.repo.DeleteOwned(ctx, userID, itemID); err != nil {
		return err
	}

	observability.ItemMutations.WithLabelValues("delete").Inc()
	publish(ctx, s.events, userID, &userID, notifications.EventItemDeleted, map[string]string{"id": itemID})
	return nil
}

// normalizePhotoURL maps an empty or blank URL to no photo.
func normalizePhotoURL(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
