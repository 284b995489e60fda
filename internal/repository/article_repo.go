package repository

import (
	"go-skystore/internal/model"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *model.Article) error
	FindByID(id uint) (*model.Article, error)
	FindByTitle(title string) (*model.Article, error)
	FindPublished(limit, offset int) ([]model.Article, int64, error)
	FindUnpublished() ([]model.Article, error)
	CountUnpublished() (int64, error)
	Update(article *model.Article) error
	Delete(id uint) error
	IncrementViews(id uint) error
}

type articleRepo struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) ArticleRepository {
	return &articleRepo{db}
}

func (r *articleRepo) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepo) FindByID(id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepo) FindByTitle(title string) (*model.Article, error) {
	var article model.Article
	if err := r.db.First(&article, "title = ?", title).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepo) FindPublished(limit, offset int) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	q := r.db.Model(&model.Article{}).Where("published = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&articles).Error
	return articles, total, err
}

func (r *articleRepo) FindUnpublished() ([]model.Article, error) {
	var articles []model.Article
	err := r.db.Where("published = ?", false).Order("created_at DESC").Find(&articles).Error
	return articles, err
}

func (r *articleRepo) CountUnpublished() (int64, error) {
	var count int64
	err := r.db.Model(&model.Article{}).Where("published = ?", false).Count(&count).Error
	return count, err
}

func (r *articleRepo) Update(article *model.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepo) Delete(id uint) error {
	return r.db.Delete(&model.Article{}, id).Error
}

// IncrementViews bumps the counter in a single UPDATE so concurrent
// detail reads never lose an increment
func (r *articleRepo) IncrementViews(id uint) error {
	return r.db.Model(&model.Article{}).
		Where("id = ?", id).
		Update("views_counter", gorm.Expr("views_counter + 1")).Error
}
