package handler

import (
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(s service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

// Create registers a supplier
// POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateSupplier(&supplier, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

// Update edits a supplier
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req service.UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier, err := h.service.UpdateSupplier(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Supplier updated", "data": supplier})
}

// Delete removes a supplier no items reference
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.service.DeleteSupplier(id, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}

// Get returns one supplier
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.service.GetSupplier(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

// List returns all suppliers
// GET /api/v1/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suppliers)
}
