package handler

import (
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TableHandler struct {
	service service.TableService
}

func NewTableHandler(s service.TableService) *TableHandler {
	return &TableHandler{service: s}
}

// Create adds a table to a restaurant's floor plan
// POST /api/v1/tables
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var table model.Table
	if err := c.BodyParser(&table); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateTable(&table, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Table created", "data": table})
}

// Update edits a table
// PUT /api/v1/tables/:id
func (h *TableHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid table ID"})
	}

	var req service.UpdateTableRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	table, err := h.service.UpdateTable(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Table updated", "data": table})
}

// Delete removes a table with no active reservations
// DELETE /api/v1/tables/:id
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid table ID"})
	}

	if err := h.service.DeleteTable(id, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Table deleted"})
}

// Get returns one table
// GET /api/v1/tables/:id
func (h *TableHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid table ID"})
	}

	table, err := h.service.GetTable(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(table)
}

// ListByRestaurant returns a restaurant's tables
// GET /api/v1/restaurants/:id/tables
func (h *TableHandler) ListByRestaurant(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	tables, err := h.service.ListByRestaurant(restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tables)
}
