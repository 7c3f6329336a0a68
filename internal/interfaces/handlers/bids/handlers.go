package bids

import (
	"errors"

	bidsvc "gavel-backend/internal/application/bids"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *bidsvc.Service
}

type placeBidRequest struct {
	ListingID string `json:"listing_id"`
	Amount    *int64 `json:"amount"`
}

// PlaceBid POST /api/v1/bids/place-bid: accept a strictly-increasing bid.
func (h *Handlers) PlaceBid(c *fiber.Ctx) error {
	var body placeBidRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "listing_id and amount are required", fiber.StatusBadRequest, nil)
	}
	if body.ListingID == "" || body.Amount == nil {
		return response.Error(c, "listing_id and amount are required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	bidderID := middleware.ActorID(c)
	if bidderID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.Service.PlaceBid(c.Context(), listingID, bidderID, *body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, bidsvc.ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, bidsvc.ErrListingClosed), errors.Is(err, bidsvc.ErrSelfBid), errors.Is(err, bidsvc.ErrBidTooLow):
			return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Bid placed successfully", result, nil)
}

type closeListingRequest struct {
	ListingID string `json:"listing_id"`
}

// CloseListing POST /api/v1/bids/close-listing: terminal; winner from highest bid.
func (h *Handlers) CloseListing(c *fiber.Ctx) error {
	var body closeListingRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	actorID := middleware.ActorID(c)
	if actorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.Service.CloseListing(c.Context(), listingID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, bidsvc.ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, bidsvc.ErrListingClosed):
			return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing closed successfully", result, nil)
}

// GetBids GET /api/v1/bids/get-bids/:listing_id: all bids for a listing, highest first.
func (h *Handlers) GetBids(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	data, err := h.Service.ListForListing(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, bidsvc.ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Bids fetched successfully", data, nil)
}
