package handler

import (
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Create places an order, snapshotting menu prices
// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.CreateOrder(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order})
}

// UpdateStatus drives the order lifecycle
// PATCH /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Status == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Status is required"})
	}

	order, err := h.service.UpdateStatus(id, model.OrderStatus(req.Status), actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order status updated", "data": order})
}

// Get returns one order
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrder(id, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ListMine returns the calling user's orders
// GET /api/v1/orders
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	orders, err := h.service.ListByUser(actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// ListByRestaurant returns a restaurant's orders
// GET /api/v1/restaurants/:id/orders
func (h *OrderHandler) ListByRestaurant(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	orders, err := h.service.ListByRestaurant(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
