package handler

import (
	"errors"

	"go-skystore/internal/service"
	"go-skystore/internal/validation"
	"go-skystore/pkg/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getActor builds the acting account from the auth middleware context
func getActor(c *fiber.Ctx) service.Actor {
	var actor service.Actor
	if id, ok := c.Locals("user_id").(string); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			actor.ID = parsed
		}
	}
	if email, ok := c.Locals("user_email").(string); ok {
		actor.Email = email
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	if privs, ok := c.Locals("user_privileges").([]string); ok {
		actor.Privileges = privs
	}
	return actor
}

// respondError maps service errors to HTTP statuses. Validation errors stay
// field-scoped; authorization denials never degrade to a silent no-op. Errors
// outside the known taxonomy (DB failures, SMTP dial errors) are internal and
// must not leak their details to the client.
func respondError(c *fiber.Ctx, err error) error {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return c.Status(400).JSON(fiber.Map{"error": fieldErr.Message, "field": fieldErr.Field})
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrRoleNotFound),
		errors.Is(err, service.ErrUnknownPrivilege):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUserInactive):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Resource not found"})
	case errors.Is(err, mailer.ErrSenderNotConfigured):
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
