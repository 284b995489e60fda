package repository

import (
	"go-skystore/internal/model"

	"gorm.io/gorm"
)

type ContactsRepository interface {
	Get() (*model.ContactsData, error)
	Seed(data *model.ContactsData) error
}

type contactsRepo struct {
	db *gorm.DB
}

func NewContactsRepo(db *gorm.DB) ContactsRepository {
	return &contactsRepo{db}
}

// Get returns the single reference record (id=1)
func (r *contactsRepo) Get() (*model.ContactsData, error) {
	var data model.ContactsData
	if err := r.db.First(&data, 1).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

// Seed creates the reference record if it doesn't exist yet
func (r *contactsRepo) Seed(data *model.ContactsData) error {
	var existing model.ContactsData
	if err := r.db.First(&existing, 1).Error; err == gorm.ErrRecordNotFound {
		data.ID = 1
		return r.db.Create(data).Error
	}
	return nil
}
