package handler

import (
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

// List returns the calling user's notifications
// GET /api/v1/notifications?unread=true
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread", false)

	notifications, err := h.service.ListNotifications(actorFromCtx(c), unreadOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// MarkRead marks one notification as read
// PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := h.service.MarkRead(id, actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllRead marks everything as read
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(actorFromCtx(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
