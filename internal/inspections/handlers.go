package inspections

import (
	"strconv"

	"torgi-backend/internal/middleware"
	"torgi-backend/internal/pkg/listingref"
	"torgi-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// CreateOrder POST /api/v1/inspections — body { listingId }.
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body struct {
		ListingID string `json:"listingId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "listingId is required", 400, nil)
	}
	ref := listingref.Parse(body.ListingID)
	if ref.IsZero() {
		return response.Error(c, "listingId is required", 400, nil)
	}

	order, err := h.Service.CreateOrder(c.Context(), userID, ref)
	if err != nil {
		statusMap := map[string]int{
			"Listing not found":  404,
			"User not found":     404,
			"Balance is frozen":  423,
			"Insufficient funds": 402,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		log.Error().Err(err).Msg("inspections: create order failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return c.JSON(fiber.Map{"ok": true, "order": order})
}

// ListMine GET /api/v1/inspections — caller's orders.
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	orders, err := h.Service.ListForUser(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("inspections: list failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Inspection orders fetched", orders, nil)
}

// Statuses GET /api/v1/inspections/statuses — fixed workflow list.
func (h *Handlers) Statuses(c *fiber.Ctx) error {
	return response.Success(c, "Inspection statuses fetched", h.Service.Statuses(), nil)
}

// ListAll GET /api/v1/admin/inspections
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	orders, err := h.Service.ListAll(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("inspections: admin list failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Inspection orders fetched", orders, nil)
}

// UpdateStatus PATCH /api/v1/admin/inspections/:id/status — body { status }.
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid order id", 400, nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "status is required", 400, nil)
	}
	order, err := h.Service.UpdateStatus(c.Context(), orderID, body.Status)
	if err != nil {
		statusMap := map[string]int{
			"Invalid status":  400,
			"Order not found": 404,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		log.Error().Err(err).Msg("inspections: status update failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Status updated", order, nil)
}

func actorUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	u := middleware.GetUser(c)
	if u == nil {
		return uuid.Nil, false
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	s, _ := m["user_id"].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
