package handler

import (
	"errors"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// actorFromCtx builds the policy actor from the locals set by RequireAuth.
func actorFromCtx(c *fiber.Ctx) policy.Actor {
	actor := policy.Actor{}
	if v, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			actor.ID = id
		}
	}
	if v, ok := c.Locals("role_code").(string); ok {
		actor.Role = v
	}
	if v, ok := c.Locals("restaurant_id").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			actor.RestaurantID = &id
		}
	}
	return actor
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionReplaced):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailExists):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	if code := apperr.StatusCode(err); code != 500 {
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
