package handler

import (
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// CreateItem registers a new inventory item with its opening stock
// POST /api/v1/inventory
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req service.CreateInventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.CreateItem(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

// UpdateItem edits item metadata; quantity only moves through transactions
// PUT /api/v1/inventory/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.UpdateInventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// GetItem returns one item
// GET /api/v1/inventory/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	item, err := h.service.GetItem(id, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ListItems returns a restaurant's inventory
// GET /api/v1/restaurants/:id/inventory
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	items, err := h.service.ListItems(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Transact applies an IN, OUT or ADJUSTMENT movement to one item
// POST /api/v1/inventory/:id/transactions
func (h *InventoryHandler) Transact(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req service.StockTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.ApplyStockTransaction(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

type AdjustStockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// Adjust sets an item's quantity to an absolute value
// POST /api/v1/inventory/:id/adjust
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Quantity < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Quantity cannot be negative"})
	}

	tx, err := h.service.AdjustStock(id, req.Quantity, req.Reason, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock adjusted", "data": tx})
}

// Transfer moves stock between two items atomically
// POST /api/v1/inventory/transfer
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var req service.TransferStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.TransferStock(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock transferred", "data": result})
}

// ListTransactions returns an item's ledger history, oldest first
// GET /api/v1/inventory/:id/transactions
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	transactions, err := h.service.ListTransactions(id, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}
