package service

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"go-skystore/internal/config"
	"go-skystore/internal/model"
	"go-skystore/internal/repository"
	"go-skystore/internal/validation"
	"go-skystore/internal/ws"
	"go-skystore/pkg/cache"
	"go-skystore/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	productsPerPage = 6
	latestProducts  = 5

	categoriesCacheKey = "categories:all"
)

func productDetailKey(id uuid.UUID) string {
	return "product:detail:" + id.String()
}

func categoryListingKey(categoryID uint) string {
	return fmt.Sprintf("products:category:%d", categoryID)
}

type CatalogService interface {
	ListProducts(page int) (*ProductPage, error)
	ListByCategory(categoryID uint) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	CreateProduct(req *ProductRequest, image *multipart.FileHeader, actor Actor) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, image *multipart.FileHeader, actor Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor Actor) error
	TogglePublication(id uuid.UUID, actor Actor) (*model.Product, error)
	ListUnpublished() ([]model.Product, error)

	ListCategories() ([]model.Category, error)
	CreateCategory(req *CategoryRequest) (*model.Category, error)
	UpdateCategory(id uint, req *CategoryRequest) (*model.Category, error)
	DeleteCategory(id uint) error
}

// ProductRequest carries user-submitted product fields
type ProductRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,max=100"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
	CategoryID  uint    `json:"category_id" form:"category_id" validate:"required"`
	Image       string  `json:"-" form:"-"` // Stored path, set by the handler on upload
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// ProductPage is the materialized home-page listing
type ProductPage struct {
	Products   []model.Product `json:"products"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalItems int64           `json:"total_items"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
	blocklist    *validation.WordBlocklist
	cfg          config.CatalogConfig
	wsHub        *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	c *cache.Cache,
	blocklist *validation.WordBlocklist,
	cfg config.CatalogConfig,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        c,
		blocklist:    blocklist,
		cfg:          cfg,
		wsHub:        hub,
	}
}

// ListProducts returns the home-page listing: published only, newest first.
// The five most recent products are logged as a diagnostic side observation
// with no effect on the returned page.
func (s *catalogService) ListProducts(page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}

	products, total, err := s.productRepo.FindPublished(productsPerPage, (page-1)*productsPerPage)
	if err != nil {
		return nil, err
	}

	if latest, err := s.productRepo.FindLatest(latestProducts); err == nil {
		for _, p := range latest {
			log.Printf("latest product: %s (created %s)", p.Name, p.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}

	totalPages := int((total + productsPerPage - 1) / productsPerPage)
	return &ProductPage{
		Products:   products,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// ListByCategory returns published products of one category, newest first.
// The materialized slice is cached per category; a miss recomputes and stores.
func (s *catalogService) ListByCategory(categoryID uint) ([]model.Product, error) {
	key := categoryListingKey(categoryID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.Product), nil
	}

	products, err := s.productRepo.FindPublishedByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, products)
	return products, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	key := productDetailKey(id)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Product), nil
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.cache.Set(key, product)
	return product, nil
}

func (s *catalogService) CreateProduct(req *ProductRequest, image *multipart.FileHeader, actor Actor) (*model.Product, error) {
	if err := s.validateProduct(req, image); err != nil {
		return nil, err
	}

	// Unique name, checked explicitly so the user sees a field error
	if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
		return nil, &validation.FieldError{Field: "name", Message: "a product with this name already exists"}
	}

	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, &validation.FieldError{Field: "category_id", Message: "category does not exist"}
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		OwnerID:     actor.ID,
		Published:   false, // Products await moderation
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct applies owner edits. Only the owner may edit; moderators
// manage publication and deletion but never content.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest, image *multipart.FileHeader, actor Actor) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actor.Owns(product.OwnerID) {
		return nil, ErrForbidden
	}

	if err := s.validateProduct(req, image); err != nil {
		return nil, err
	}

	if req.Name != product.Name {
		if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
			return nil, &validation.FieldError{Field: "name", Message: "a product with this name already exists"}
		}
	}

	oldCategoryID := product.CategoryID
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, &validation.FieldError{Field: "category_id", Message: "category does not exist"}
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	if req.Image != "" {
		product.Image = req.Image
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	// Stale renderings of the edited product must never be served
	s.invalidateProduct(product)
	if oldCategoryID != product.CategoryID {
		s.cache.Delete(categoryListingKey(oldCategoryID))
	}

	return product, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	allowed := actor.Owns(product.OwnerID) ||
		actor.Can(model.PrivDeleteProduct) ||
		actor.Can(model.PrivManageProductPublication)
	if !allowed {
		return ErrForbidden
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateProduct(product)
	return nil
}

// TogglePublication flips the published flag unconditionally. Only holders of
// the publication capability may call it; everyone else is denied with no
// state change.
func (s *catalogService) TogglePublication(id uuid.UUID, actor Actor) (*model.Product, error) {
	if !actor.Can(model.PrivManageProductPublication) {
		return nil, ErrForbidden
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	product.Published = !product.Published
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateProduct(product)

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent("product_publication", map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
			"published":  product.Published,
			"moderator":  actor.Email,
		})
	}

	return product, nil
}

func (s *catalogService) ListUnpublished() ([]model.Product, error) {
	return s.productRepo.FindUnpublished()
}

// ListCategories serves the category lookup from cache; categories change
// rarely and every page needs them.
func (s *catalogService) ListCategories() ([]model.Category, error) {
	if cached, ok := s.cache.Get(categoriesCacheKey); ok {
		return cached.([]model.Category), nil
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	s.cache.Set(categoriesCacheKey, categories)
	return categories, nil
}

func (s *catalogService) CreateCategory(req *CategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &validation.FieldError{Field: errs[0].FailedField, Message: "failed on " + errs[0].Tag}
	}
	if existing, _ := s.categoryRepo.FindByName(req.Name); existing != nil {
		return nil, &validation.FieldError{Field: "name", Message: "a category with this name already exists"}
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.cache.Delete(categoriesCacheKey)
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, req *CategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &validation.FieldError{Field: errs[0].FailedField, Message: "failed on " + errs[0].Tag}
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.cache.Delete(categoriesCacheKey)
	s.cache.Delete(categoryListingKey(id))
	return category, nil
}

// DeleteCategory cascade-deletes the category's products, so their cached
// renderings go too. Unpublished products are evicted as well; their detail
// pages get cached when a moderator or the owner views them.
func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	products, err := s.productRepo.FindByCategory(id)
	if err == nil {
		for _, p := range products {
			s.cache.Delete(productDetailKey(p.ID))
		}
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(categoriesCacheKey)
	s.cache.Delete(categoryListingKey(id))
	return nil
}

func (s *catalogService) validateProduct(req *ProductRequest, image *multipart.FileHeader) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &validation.FieldError{Field: first.FailedField, Message: "failed on " + first.Tag}
	}
	if err := validation.CheckPrice(req.Price); err != nil {
		return err
	}
	if err := s.blocklist.Check("name", req.Name); err != nil {
		return err
	}
	if err := s.blocklist.Check("description", req.Description); err != nil {
		return err
	}
	return validation.CheckImageUpload("image", image, s.cfg.AllowedImageTypes, s.cfg.MaxImageSize)
}

func (s *catalogService) invalidateProduct(product *model.Product) {
	s.cache.Delete(productDetailKey(product.ID))
	s.cache.Delete(categoryListingKey(product.CategoryID))
}
