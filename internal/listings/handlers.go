package listings

import (
	"torgi-backend/internal/pkg/listingref"
	"torgi-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// GetListings GET /api/v1/listings?region=&category= — published listings.
func (h *Handlers) GetListings(c *fiber.Ctx) error {
	listings, err := h.Service.GetPublished(c.Context(), c.Query("region"), c.Query("category"))
	if err != nil {
		log.Error().Err(err).Msg("listings: fetch failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// GetListing GET /api/v1/listings/:id — id may be internal numeric or external source id.
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	ref := listingref.Parse(c.Params("id"))
	if ref.IsZero() {
		return response.Error(c, "listing id is required", 400, nil)
	}
	listing, err := h.Service.GetByRef(c.Context(), ref)
	if err != nil {
		if err.Error() == "Listing not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		log.Error().Err(err).Msg("listings: fetch one failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}

// Ingest POST /api/v1/admin/listings/ingest — upsert parsed lot payloads.
func (h *Handlers) Ingest(c *fiber.Ctx) error {
	var body struct {
		Listings []IngestInput `json:"listings"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if len(body.Listings) == 0 {
		return response.Error(c, "listings is required", 400, nil)
	}
	created, updated, err := h.Service.Ingest(c.Context(), body.Listings)
	if err != nil {
		if err.Error() == "external_id and title are required" {
			return response.Error(c, err.Error(), 400, nil)
		}
		log.Error().Err(err).Msg("listings: ingest failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listings ingested successfully", fiber.Map{
		"created": created,
		"updated": updated,
	}, nil)
}

// Publish PATCH /api/v1/admin/listings/:id/publish
func (h *Handlers) Publish(c *fiber.Ctx) error {
	return h.setPublished(c, true, "Listing published")
}

// Unpublish PATCH /api/v1/admin/listings/:id/unpublish
func (h *Handlers) Unpublish(c *fiber.Ctx) error {
	return h.setPublished(c, false, "Listing unpublished")
}

func (h *Handlers) setPublished(c *fiber.Ctx, published bool, msg string) error {
	ref := listingref.Parse(c.Params("id"))
	if ref.IsZero() {
		return response.Error(c, "listing id is required", 400, nil)
	}
	listing, err := h.Service.SetPublished(c.Context(), ref, published)
	if err != nil {
		if err.Error() == "Listing not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		log.Error().Err(err).Msg("listings: publish toggle failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, msg, listing, nil)
}
