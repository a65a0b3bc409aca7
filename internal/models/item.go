package models

import "time"

// ShoppingItem is a single entry on a user's shopping list.
type ShoppingItem struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;index" json:"user_id"`
	Description string    `gorm:"size:500;not null" json:"description"`
	PhotoURL    *string   `gorm:"type:text" json:"photo_url"`
	CategoryID  string    `gorm:"size:36;not null;index" json:"category_id"`
	IsPurchased bool      `gorm:"not null;default:false" json:"is_purchased"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ShoppingItem) TableName() string {
	return "shopping_items"
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
