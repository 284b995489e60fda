package model

import "github.com/google/uuid"

// Product represents an item in the storefront catalog.
// Products start unpublished and become visible only after a moderator
// toggles the publication flag.
type Product struct {
	BaseModel
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Price       float64   `gorm:"not null" json:"price" validate:"gte=0"`
	Published   bool      `gorm:"default:false;not null" json:"published"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id" validate:"required"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE;" json:"category,omitempty"`

	// Owner is set at creation to the acting account and never changes
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
