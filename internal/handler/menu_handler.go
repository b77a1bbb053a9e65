package handler

import (
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	service service.MenuService
}

func NewMenuHandler(s service.MenuService) *MenuHandler {
	return &MenuHandler{service: s}
}

// Create adds a menu to a restaurant
// POST /api/v1/menus
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var menu model.Menu
	if err := c.BodyParser(&menu); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateMenu(&menu, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Menu created", "data": menu})
}

// Update edits a menu
// PUT /api/v1/menus/:id
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu ID"})
	}

	var req service.UpdateMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	menu, err := h.service.UpdateMenu(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Menu updated", "data": menu})
}

// Delete removes a menu
// DELETE /api/v1/menus/:id
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu ID"})
	}

	if err := h.service.DeleteMenu(id, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Menu deleted"})
}

// Get returns one menu with its items
// GET /api/v1/menus/:id
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu ID"})
	}

	menu, err := h.service.GetMenu(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(menu)
}

// ListByRestaurant returns a restaurant's menus
// GET /api/v1/restaurants/:id/menus
func (h *MenuHandler) ListByRestaurant(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	menus, err := h.service.ListByRestaurant(restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(menus)
}

// AddItem adds an item to a menu
// POST /api/v1/menus/:id/items
func (h *MenuHandler) AddItem(c *fiber.Ctx) error {
	menuID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu ID"})
	}

	var item model.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddItem(menuID, &item, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Menu item added", "data": item})
}

// UpdateItem edits a menu item
// PUT /api/v1/menu-items/:id
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req service.UpdateMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateItem(itemID, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Menu item updated", "data": item})
}

// DeleteItem removes a menu item
// DELETE /api/v1/menu-items/:id
func (h *MenuHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	if err := h.service.DeleteItem(itemID, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Menu item deleted"})
}
