// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"shoplist/internal/models"
	"shoplist/internal/validation"

	"gopkg.in/yaml.v3"
)

//go:embed default_categories.yaml
var defaultCategoriesYAML []byte

type categorySpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

// GlobalCategoryWriter is the part of the category repository the seeder needs.
type GlobalCategoryWriter interface {
	UpsertGlobal(ctx context.Context, categories []models.Category) error
}

// DefaultCategories returns the built-in shared categories.
func DefaultCategories() ([]models.Category, error) {
	return parseCategories(defaultCategoriesYAML)
}

func parseCategories(raw []byte) ([]models.Category, error) {
	var specs []categorySpec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse default categories: %w", err)
	}

	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(specs))
	out := make([]models.Category, 0, len(specs))
	for _, s := range specs {
		if s.ID == "" {
			return nil, fmt.Errorf("default category %q has no id", s.Name)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("duplicate default category id %s", s.ID)
		}
		seen[s.ID] = struct{}{}
		if err := validation.ValidateCategory(s.Name, s.Color, s.Icon); err != nil {
			return nil, fmt.Errorf("default category %s: %w", s.ID, err)
		}
		out = append(out, models.Category{
			ID:        s.ID,
			Name:      s.Name,
			Color:     s.Color,
			Icon:      s.Icon,
			CreatedAt: now,
		})
	}
	return out, nil
}

// Categories inserts the default categories. Rows that already exist are left alone.
func Categories(ctx context.Context, repo GlobalCategoryWriter) error {
	categories, err := DefaultCategories()
	if err != nil {
		return err
	}
	if err := repo.UpsertGlobal(ctx, categories); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}
	return nil
}
