package handler

import (
	"fmt"
	"path/filepath"
	"strconv"

	"go-skystore/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BlogHandler struct {
	service service.BlogService
}

func NewBlogHandler(s service.BlogService) *BlogHandler {
	return &BlogHandler{service: s}
}

func parseArticleID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// ListArticles handles the blog listing
// GET /api/v1/articles?page=1
func (h *BlogHandler) ListArticles(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	result, err := h.service.ListArticles(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetArticle handles the article detail page; every read counts a view
// GET /api/v1/articles/:id
func (h *BlogHandler) GetArticle(c *fiber.Ctx) error {
	id, err := parseArticleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid article ID"})
	}

	article, err := h.service.GetArticle(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// CreateArticle handles public article submission
// POST /api/v1/articles
func (h *BlogHandler) CreateArticle(c *fiber.Ctx) error {
	var req service.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fh := imageUpload(c)
	if fh != nil {
		req.Image = fmt.Sprintf("uploads/articles/%s%s", uuid.New().String(), filepath.Ext(fh.Filename))
	}

	article, err := h.service.CreateArticle(&req, fh, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	if fh != nil {
		if err := c.SaveFile(fh, req.Image); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store uploaded image"})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Article submitted, it will appear after moderation", "data": article})
}

// UpdateArticle edits an article, moderators only
// PUT /api/v1/articles/:id
func (h *BlogHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := parseArticleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid article ID"})
	}

	var req service.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fh := imageUpload(c)
	if fh != nil {
		req.Image = fmt.Sprintf("uploads/articles/%s%s", uuid.New().String(), filepath.Ext(fh.Filename))
	}

	article, err := h.service.UpdateArticle(id, &req, fh, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	if fh != nil {
		if err := c.SaveFile(fh, req.Image); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store uploaded image"})
		}
	}

	return c.JSON(fiber.Map{"message": "Article updated", "data": article})
}

// DeleteArticle removes an article, moderators only
// DELETE /api/v1/articles/:id
func (h *BlogHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := parseArticleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid article ID"})
	}

	if err := h.service.DeleteArticle(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}

// TogglePublication flips the published flag, moderators only
// POST /api/v1/articles/:id/publication
func (h *BlogHandler) TogglePublication(c *fiber.Ctx) error {
	id, err := parseArticleID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid article ID"})
	}

	article, err := h.service.TogglePublication(id, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Publication state changed", "data": article})
}

// ListUnpublished returns the article moderation queue
// GET /api/v1/articles/unpublished
func (h *BlogHandler) ListUnpublished(c *fiber.Ctx) error {
	articles, err := h.service.ListUnpublished()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"articles": articles})
}
