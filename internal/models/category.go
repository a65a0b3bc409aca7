package models

import "time"

// Category groups shopping items. A nil UserID marks a global category
// visible to every user.
type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Color     string    `gorm:"size:7;not null" json:"color"`
	Icon      string    `gorm:"size:40;not null" json:"icon"`
	UserID    *string   `gorm:"size:36;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// IsGlobal reports whether the category is shared by all users.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}
