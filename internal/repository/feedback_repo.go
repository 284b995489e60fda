package repository

import (
	"go-skystore/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	FindAll() ([]model.Feedback, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db}
}

func (r *feedbackRepo) Create(feedback *model.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *feedbackRepo) FindAll() ([]model.Feedback, error) {
	var feedback []model.Feedback
	err := r.db.Order("created_at DESC").Find(&feedback).Error
	return feedback, err
}
