package service

import (
	"context"
	"strings"
	"time"

	"shoplist/internal/models"
	"shoplist/internal/notifications"
	"shoplist/internal/repository"
	"shoplist/internal/validation"

	"github.com/google/uuid"
)

type CategoryService struct {
	repo   repository.CategoryRepository
	events EventPublisher
	newID  func() string
	now    func() time.Time
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Color  string
	Icon   string
}

func NewCategoryService(repo repository.CategoryRepository, events EventPublisher) *CategoryService {
	return &CategoryService{
		repo:   repo,
		events: events,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// List returns the global categories and the caller's own.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	return s.repo.ListVisible(ctx, userID)
}

// Create adds a category owned by the caller.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	color := strings.TrimSpace(in.Color)
	icon := strings.TrimSpace(in.Icon)
	if err := validation.ValidateCategory(name, color, icon); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	owner := in.UserID
	category := &models.Category{
		ID:        s.newID(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		UserID:    &owner,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	publish(ctx, s.events, owner, category.UserID, notifications.EventCategoryCreated, category)
	return category, nil
}
