package service

import (
	"errors"
	"mime/multipart"

	"go-skystore/internal/config"
	"go-skystore/internal/model"
	"go-skystore/internal/repository"
	"go-skystore/internal/validation"
	"go-skystore/internal/ws"
	"go-skystore/pkg/validator"

	"gorm.io/gorm"
)

const articlesPerPage = 4

type BlogService interface {
	ListArticles(page int) (*ArticlePage, error)
	GetArticle(id uint) (*model.Article, error)
	CreateArticle(req *ArticleRequest, image *multipart.FileHeader, actor Actor) (*model.Article, error)
	UpdateArticle(id uint, req *ArticleRequest, image *multipart.FileHeader, actor Actor) (*model.Article, error)
	DeleteArticle(id uint, actor Actor) error
	TogglePublication(id uint, actor Actor) (*model.Article, error)
	ListUnpublished() ([]model.Article, error)
}

type ArticleRequest struct {
	Title    string `json:"title" form:"title" validate:"required,max=100"`
	Contents string `json:"contents" form:"contents" validate:"required"`
	Image    string `json:"-" form:"-"` // Stored path, set by the handler on upload
}

type ArticlePage struct {
	Articles   []model.Article `json:"articles"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalItems int64           `json:"total_items"`
}

type blogService struct {
	articleRepo repository.ArticleRepository
	blocklist   *validation.WordBlocklist
	cfg         config.CatalogConfig
	wsHub       *ws.Hub
}

func NewBlogService(articleRepo repository.ArticleRepository, blocklist *validation.WordBlocklist, cfg config.CatalogConfig, hub *ws.Hub) BlogService {
	return &blogService{
		articleRepo: articleRepo,
		blocklist:   blocklist,
		cfg:         cfg,
		wsHub:       hub,
	}
}

func (s *blogService) ListArticles(page int) (*ArticlePage, error) {
	if page < 1 {
		page = 1
	}

	articles, total, err := s.articleRepo.FindPublished(articlesPerPage, (page-1)*articlesPerPage)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + articlesPerPage - 1) / articlesPerPage)
	return &ArticlePage{
		Articles:   articles,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// GetArticle bumps the views counter on every read, then returns the row.
// The counter increment is why article detail pages are never cached.
func (s *blogService) GetArticle(id uint) (*model.Article, error) {
	if err := s.articleRepo.IncrementViews(id); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return article, nil
}

func (s *blogService) CreateArticle(req *ArticleRequest, image *multipart.FileHeader, actor Actor) (*model.Article, error) {
	if err := s.validateArticle(req, image); err != nil {
		return nil, err
	}

	if existing, _ := s.articleRepo.FindByTitle(req.Title); existing != nil {
		return nil, &validation.FieldError{Field: "title", Message: "an article with this title already exists"}
	}

	article := &model.Article{
		Title:     req.Title,
		Contents:  req.Contents,
		Image:     req.Image,
		Published: false, // Articles appear after a moderator check
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *blogService) UpdateArticle(id uint, req *ArticleRequest, image *multipart.FileHeader, actor Actor) (*model.Article, error) {
	if !actor.Can(model.PrivManageArticlePublication) {
		return nil, ErrForbidden
	}

	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.validateArticle(req, image); err != nil {
		return nil, err
	}

	if req.Title != article.Title {
		if existing, _ := s.articleRepo.FindByTitle(req.Title); existing != nil {
			return nil, &validation.FieldError{Field: "title", Message: "an article with this title already exists"}
		}
	}

	article.Title = req.Title
	article.Contents = req.Contents
	if req.Image != "" {
		article.Image = req.Image
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *blogService) DeleteArticle(id uint, actor Actor) error {
	allowed := actor.Can(model.PrivDeleteArticle) || actor.Can(model.PrivManageArticlePublication)
	if !allowed {
		return ErrForbidden
	}

	if _, err := s.articleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.articleRepo.Delete(id)
}

func (s *blogService) TogglePublication(id uint, actor Actor) (*model.Article, error) {
	if !actor.Can(model.PrivManageArticlePublication) {
		return nil, ErrForbidden
	}

	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	article.Published = !article.Published
	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent("article_publication", map[string]interface{}{
			"article_id": article.ID,
			"title":      article.Title,
			"published":  article.Published,
			"moderator":  actor.Email,
		})
	}

	return article, nil
}

func (s *blogService) ListUnpublished() ([]model.Article, error) {
	return s.articleRepo.FindUnpublished()
}

func (s *blogService) validateArticle(req *ArticleRequest, image *multipart.FileHeader) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &validation.FieldError{Field: first.FailedField, Message: "failed on " + first.Tag}
	}
	if err := s.blocklist.Check("title", req.Title); err != nil {
		return err
	}
	if err := s.blocklist.Check("contents", req.Contents); err != nil {
		return err
	}
	return validation.CheckImageUpload("image", image, s.cfg.AllowedImageTypes, s.cfg.MaxImageSize)
}
