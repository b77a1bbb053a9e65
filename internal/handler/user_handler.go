package handler

import (
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Create adds a user account (admin; owners for their own staff)
// POST /api/v1/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.CreateUser(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "User created", "data": user.ToResponse()})
}

// Update edits a user account
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.UpdateUser(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User updated", "data": user.ToResponse()})
}

// Delete removes a user account
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.service.DeleteUser(id, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

// List returns every user (admin only)
// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// Get returns one user
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.service.GetUserByID(id, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ListByRestaurant returns a restaurant's staff accounts
// GET /api/v1/restaurants/:id/users
func (h *UserHandler) ListByRestaurant(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	users, err := h.service.GetUsersByRestaurant(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
