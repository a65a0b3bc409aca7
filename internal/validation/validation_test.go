package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "alice", false},
		{"Mixed Case", "Alice_B-2", false},
		{"Exactly Min Length", "bob", false},
		{"Exactly Max Length", strings.Repeat("a", 30), false},
		{"Too Short", "al", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Space", "al ice", true},
		{"Symbol", "alice!", true},
		{"Unicode", "álice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePassword("pw123"))
	assert.NoError(t, ValidatePassword("x"))
	assert.NoError(t, ValidatePassword(strings.Repeat("b", 72)))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("b", 73)))
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		catName string
		color   string
		icon    string
		ok      bool
	}{
		{"valid long color", "Pets", "#4CAF50", "paw", true},
		{"valid short color", "Pets", "#fff", "paw", true},
		{"unicode name", "Laticínios", "#2196F3", "milk", true},
		{"missing name", "", "#fff", "paw", false},
		{"long name", strings.Repeat("n", 51), "#fff", "paw", false},
		{"color without hash", "Pets", "4CAF50", "paw", false},
		{"color wrong length", "Pets", "#4CAF5", "paw", false},
		{"color not hex", "Pets", "#GGGGGG", "paw", false},
		{"missing icon", "Pets", "#fff", "", false},
		{"long icon", "Pets", "#fff", strings.Repeat("i", 41), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCategory(tc.catName, tc.color, tc.icon)
			if tc.ok && err != nil {
				t.Fatalf("expected valid category, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid category, got nil error")
			}
		})
	}
}

func TestValidateDescriptionAndCategoryID(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateDescription("Milk"))
	assert.NoError(t, ValidateDescription(strings.Repeat("d", 500)))
	assert.EqualError(t, ValidateDescription(""), "description is required")
	assert.Error(t, ValidateDescription(strings.Repeat("d", 501)))

	assert.NoError(t, ValidateCategoryID("cat-4"))
	assert.Error(t, ValidateCategoryID(""))
	assert.Error(t, ValidateCategoryID(strings.Repeat("c", 37)))
}
