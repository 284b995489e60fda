package handler

import (
	"go-skystore/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	service service.ContactService
}

func NewContactHandler(s service.ContactService) *ContactHandler {
	return &ContactHandler{service: s}
}

// GetContacts returns the store's contact details
// GET /api/v1/contacts
func (h *ContactHandler) GetContacts(c *fiber.Ctx) error {
	data, err := h.service.GetContacts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}

// SubmitFeedback stores a contact-form message
// POST /api/v1/contacts/feedback
func (h *ContactHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req service.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	feedback, err := h.service.SubmitFeedback(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"message": "Thank you, " + feedback.Name + "! Your message has been sent.",
	})
}

// ListFeedback returns submitted feedback for the back office
// GET /api/v1/contacts/feedback
func (h *ContactHandler) ListFeedback(c *fiber.Ctx) error {
	feedback, err := h.service.ListFeedback()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"feedback": feedback})
}
