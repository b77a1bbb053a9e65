package handler

import (
	"time"

	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// Dashboard is the restaurant summary view
// GET /api/v1/restaurants/:id/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	report, err := h.service.Dashboard(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// LowStock lists items at or below their reorder threshold
// GET /api/v1/restaurants/:id/reports/low-stock
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	items, err := h.service.LowStock(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// ExpiringSoon lists items expiring within the warning window
// GET /api/v1/restaurants/:id/reports/expiring
func (h *ReportHandler) ExpiringSoon(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	items, err := h.service.ExpiringSoon(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// Valuation prices the on-hand stock
// GET /api/v1/restaurants/:id/reports/valuation
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	report, err := h.service.Valuation(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// StockMovement buckets ledger activity per day
// GET /api/v1/restaurants/:id/reports/stock-movement?range=7d
func (h *ReportHandler) StockMovement(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	rangeParam := c.Query("range", "7d")
	now := time.Now()
	var startDate time.Time

	switch rangeParam {
	case "7d":
		startDate = now.AddDate(0, 0, -7)
	case "1m":
		startDate = now.AddDate(0, -1, 0)
	case "3m":
		startDate = now.AddDate(0, -3, 0)
	case "6m":
		startDate = now.AddDate(0, -6, 0)
	case "12m":
		startDate = now.AddDate(0, -12, 0)
	default:
		startDate = now.AddDate(0, 0, -7)
	}

	movement, err := h.service.StockMovement(restaurantID, startDate, now, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movement)
}
