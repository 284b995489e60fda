package service

import (
	"go-skystore/internal/repository"
)

// DashboardService reports moderation backlog figures for the back office
type DashboardService interface {
	GetModerationStats() (*ModerationStats, error)
}

type ModerationStats struct {
	UnpublishedProducts int64 `json:"unpublished_products"`
	UnpublishedArticles int64 `json:"unpublished_articles"`
}

type dashboardService struct {
	productRepo repository.ProductRepository
	articleRepo repository.ArticleRepository
}

func NewDashboardService(productRepo repository.ProductRepository, articleRepo repository.ArticleRepository) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		articleRepo: articleRepo,
	}
}

func (s *dashboardService) GetModerationStats() (*ModerationStats, error) {
	products, err := s.productRepo.CountUnpublished()
	if err != nil {
		return nil, err
	}
	articles, err := s.articleRepo.CountUnpublished()
	if err != nil {
		return nil, err
	}
	return &ModerationStats{
		UnpublishedProducts: products,
		UnpublishedArticles: articles,
	}, nil
}
