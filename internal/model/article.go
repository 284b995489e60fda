package model

import "time"

// Article represents a blog post. The views counter only ever grows;
// it is incremented on every detail read.
type Article struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"title" validate:"required"`
	Contents     string    `gorm:"type:text;not null" json:"contents" validate:"required"`
	Image        string    `gorm:"type:varchar(255)" json:"image"`
	Published    bool      `gorm:"default:false;not null" json:"published"`
	ViewsCounter uint      `gorm:"default:0" json:"views_counter"`
	CreatedAt    time.Time `json:"created_at"`
}
