package model

// Category represents a product category in the storefront
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	Products    []Product `gorm:"constraint:OnDelete:CASCADE;" json:"products,omitempty"`
}

// DefaultCategories are seeded on first boot so the storefront is usable immediately
var DefaultCategories = []Category{
	{Name: "Plugins", Description: "Editor and IDE plugins"},
	{Name: "Code Samples", Description: "Reusable code samples and snippets"},
	{Name: "Templates", Description: "Project and site templates"},
}
