package handler

import (
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RestaurantHandler struct {
	service service.RestaurantService
}

func NewRestaurantHandler(s service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: s}
}

// Create registers a restaurant (admin only)
// POST /api/v1/restaurants
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var restaurant model.Restaurant
	if err := c.BodyParser(&restaurant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateRestaurant(&restaurant, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Restaurant created", "data": restaurant})
}

// Update edits a restaurant (admin or its owner)
// PUT /api/v1/restaurants/:id
func (h *RestaurantHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	var req service.UpdateRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	restaurant, err := h.service.UpdateRestaurant(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Restaurant updated", "data": restaurant})
}

// Get returns one restaurant
// GET /api/v1/restaurants/:id
func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	restaurant, err := h.service.GetRestaurant(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(restaurant)
}

// List returns all restaurants
// GET /api/v1/restaurants
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	restaurants, err := h.service.ListRestaurants()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(restaurants)
}
