package watchlist

import (
	"errors"

	watchsvc "gavel-backend/internal/application/watchlist"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *watchsvc.Service
}

type toggleRequest struct {
	ListingID string `json:"listing_id"`
}

// Toggle POST /api/v1/watchlist/toggle: add or remove the listing from the
// session user's watchlist.
func (h *Handlers) Toggle(c *fiber.Ctx) error {
	var body toggleRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	userID := middleware.ActorID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	watching, err := h.Service.Toggle(c.Context(), userID, listingID)
	if err != nil {
		if errors.Is(err, watchsvc.ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Watchlist updated", fiber.Map{"watching": watching}, nil)
}

// GetWatchlist GET /api/v1/watchlist: the session user's watched listings.
func (h *Handlers) GetWatchlist(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	data, err := h.Service.ListForUser(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Watchlist fetched successfully", data, nil)
}
