package model

import "time"

// Feedback stores a message submitted through the contact form.
// Rows are insert-only; users never update or delete them.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Phone     string    `gorm:"type:varchar(15);not null" json:"phone" validate:"required"`
	Message   string    `gorm:"type:text;not null" json:"message" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
