package handler

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"go-skystore/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// imageUpload pulls an optional uploaded image from the request. A missing
// file field simply means no re-upload happened.
func imageUpload(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}

// ListProducts handles the storefront listing
// GET /api/v1/products?page=1&category_id=2
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		products, err := h.service.ListByCategory(uint(categoryID))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"products": products})
	}

	page := c.QueryInt("page", 1)
	result, err := h.service.ListProducts(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetProduct handles the product detail page
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// CreateProduct handles product submission by an authenticated account
// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fh := imageUpload(c)
	if fh != nil {
		req.Image = fmt.Sprintf("uploads/products/%s%s", uuid.New().String(), filepath.Ext(fh.Filename))
	}

	product, err := h.service.CreateProduct(&req, fh, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	if fh != nil {
		if err := c.SaveFile(fh, req.Image); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store uploaded image"})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created, awaiting moderation", "data": product})
}

// UpdateProduct handles owner edits
// PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fh := imageUpload(c)
	if fh != nil {
		req.Image = fmt.Sprintf("uploads/products/%s%s", uuid.New().String(), filepath.Ext(fh.Filename))
	}

	product, err := h.service.UpdateProduct(id, &req, fh, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	if fh != nil {
		if err := c.SaveFile(fh, req.Image); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store uploaded image"})
		}
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct handles removal by the owner or a moderator
// DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// TogglePublication flips the published flag, moderators only
// POST /api/v1/products/:id/publication
func (h *CatalogHandler) TogglePublication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.TogglePublication(id, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Publication state changed", "data": product})
}

// ListUnpublished returns the moderation queue
// GET /api/v1/products/unpublished
func (h *CatalogHandler) ListUnpublished(c *fiber.Ctx) error {
	products, err := h.service.ListUnpublished()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// ListCategories returns all categories
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateCategory adds a category, admin only
// POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.CreateCategory(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

// UpdateCategory edits a category, admin only
// PUT /api/v1/categories/:id
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(uint(id), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

// DeleteCategory removes a category and its products, admin only
// DELETE /api/v1/categories/:id
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
