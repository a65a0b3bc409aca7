package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	MaxCategoryNameLen = 50
	MaxCategoryIconLen = 40
	MaxDescriptionLen  = 500
	MaxCategoryIDLen   = 36
)

var colorRegex = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func lengthBetween(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		if min == 1 {
			return fmt.Errorf("%s is required", field)
		}
		return fmt.Errorf("%s must be at least %d characters", field, min)
	}
	if n > max {
		return fmt.Errorf("%s must not exceed %d characters", field, max)
	}
	return nil
}

// ValidateCategory checks the user-supplied fields of a category.
func ValidateCategory(name, color, icon string) error {
	if err := lengthBetween("name", name, 1, MaxCategoryNameLen); err != nil {
		return err
	}
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("color must be a hex value like #RGB or #RRGGBB")
	}
	return lengthBetween("icon", icon, 1, MaxCategoryIconLen)
}

// ValidateDescription checks an item description.
func ValidateDescription(description string) error {
	return lengthBetween("description", description, 1, MaxDescriptionLen)
}

// ValidateCategoryID checks the shape of a category reference. Existence is not checked.
func ValidateCategoryID(id string) error {
	return lengthBetween("category_id", id, 1, MaxCategoryIDLen)
}
