package repository

import (
	"go-skystore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindPublished(limit, offset int) ([]model.Product, int64, error)
	FindPublishedByCategory(categoryID uint) ([]model.Product, error)
	FindByCategory(categoryID uint) ([]model.Product, error)
	FindLatest(n int) ([]model.Product, error)
	FindUnpublished() ([]model.Product, error)
	CountUnpublished() (int64, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Owner").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindPublished returns the storefront listing: published only, newest first
func (r *productRepo) FindPublished(limit, offset int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.Model(&model.Product{}).Where("published = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindPublishedByCategory(categoryID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("category_id = ? AND published = ?", categoryID, true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// FindByCategory returns every product of the category, published or not
func (r *productRepo) FindByCategory(categoryID uint) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("category_id = ?", categoryID).Find(&products).Error
	return products, err
}

func (r *productRepo) FindLatest(n int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("published = ?", true).
		Order("created_at DESC").
		Limit(n).
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindUnpublished() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Owner").
		Where("published = ?", false).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) CountUnpublished() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("published = ?", false).Count(&count).Error
	return count, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}
