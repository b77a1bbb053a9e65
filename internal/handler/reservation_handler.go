package handler

import (
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReservationHandler struct {
	service service.ReservationService
}

func NewReservationHandler(s service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: s}
}

// Create books a table or the whole restaurant
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req service.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	reservation, err := h.service.CreateReservation(&req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Reservation created", "data": reservation})
}

// Update changes time, table or guest count of an existing reservation
// PUT /api/v1/reservations/:id
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	var req service.UpdateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	reservation, err := h.service.UpdateReservation(id, &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Reservation updated", "data": reservation})
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus drives the reservation lifecycle
// PATCH /api/v1/reservations/:id/status
func (h *ReservationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Status == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Status is required"})
	}

	reservation, err := h.service.UpdateStatus(id, model.ReservationStatus(req.Status), actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Reservation status updated", "data": reservation})
}

// Cancel is a shortcut for the CANCELLED transition
// POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	reservation, err := h.service.CancelReservation(id, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Reservation cancelled", "data": reservation})
}

// Get returns one reservation
// GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	reservation, err := h.service.GetReservation(id, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(reservation)
}

// ListMine returns the calling user's reservations
// GET /api/v1/reservations
func (h *ReservationHandler) ListMine(c *fiber.Ctx) error {
	reservations, err := h.service.ListByUser(actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservations)
}

// ListByRestaurant returns all reservations of one restaurant
// GET /api/v1/restaurants/:id/reservations
func (h *ReservationHandler) ListByRestaurant(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	reservations, err := h.service.ListByRestaurant(restaurantID, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reservations)
}

// Availability lists tables free for a given slot
// GET /api/v1/restaurants/:id/availability?date=YYYY-MM-DD&time=HH:MM&guests=N&duration=M
func (h *ReservationHandler) Availability(c *fiber.Ctx) error {
	restaurantID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid restaurant ID"})
	}

	date := c.Query("date")
	timeStr := c.Query("time")
	guests := c.QueryInt("guests", 1)
	duration := c.QueryInt("duration", 0)
	if date == "" || timeStr == "" {
		return c.Status(400).JSON(fiber.Map{"error": "date and time query parameters are required"})
	}

	tables, err := h.service.FindAvailableTables(restaurantID, date, timeStr, guests, duration)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"available_tables": tables, "count": len(tables)})
}
