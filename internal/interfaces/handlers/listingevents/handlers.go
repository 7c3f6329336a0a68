package listingevents

import (
	"errors"

	lesvc "gavel-backend/internal/application/listingevents"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *lesvc.Service
}

// GetListingEvents GET /api/v1/listing-events/:listing_id: audit trail, oldest first.
func (h *Handlers) GetListingEvents(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	events, err := h.Service.ListForListing(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, lesvc.ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing events fetched successfully", events, nil)
}
