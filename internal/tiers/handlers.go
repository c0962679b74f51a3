package tiers

import (
	"strconv"

	"torgi-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/admin/tiers
func (h *Handlers) List(c *fiber.Ctx) error {
	tiers, err := h.Service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("tiers: list failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Tiers fetched", tiers, nil)
}

// Create POST /api/v1/admin/tiers
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in TierInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	tier, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return h.tierError(c, err)
	}
	return response.SuccessCreated(c, "Tier created", tier, nil)
}

// Update PUT /api/v1/admin/tiers/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid tier id", 400, nil)
	}
	var in TierInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	tier, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return h.tierError(c, err)
	}
	return response.Success(c, "Tier updated", tier, nil)
}

// Delete DELETE /api/v1/admin/tiers/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid tier id", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return h.tierError(c, err)
	}
	return response.Success(c, "Tier deleted", nil, nil)
}

// GetSettings GET /api/v1/admin/pricing-settings
func (h *Handlers) GetSettings(c *fiber.Ctx) error {
	settings, err := h.Service.GetSettings(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("tiers: get settings failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Pricing settings fetched", settings, nil)
}

// UpdateSettings PUT /api/v1/admin/pricing-settings — body { deposit_percent }.
func (h *Handlers) UpdateSettings(c *fiber.Ctx) error {
	var body struct {
		DepositPercent *float64 `json:"deposit_percent"`
	}
	if err := c.BodyParser(&body); err != nil || body.DepositPercent == nil {
		return response.Error(c, "deposit_percent is required", 400, nil)
	}
	settings, err := h.Service.UpdateSettings(c.Context(), *body.DepositPercent)
	if err != nil {
		log.Error().Err(err).Msg("tiers: update settings failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Pricing settings updated", settings, nil)
}

func (h *Handlers) tierError(c *fiber.Ctx, err error) error {
	statusMap := map[string]int{
		"label is required":                   400,
		"amount must be a positive number":    400,
		"max_price must be a positive number": 400,
		"Tier not found":                      404,
	}
	if code, ok := statusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	log.Error().Err(err).Msg("tiers: operation failed")
	return response.Error(c, "Internal Server Error", 500, nil)
}
