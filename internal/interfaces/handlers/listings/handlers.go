package listings

import (
	"errors"
	"strings"

	listsvc "gavel-backend/internal/application/listings"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
}

type createListingRequest struct {
	Name        string  `json:"name"`
	StartingBid *int64  `json:"starting_bid"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	CategoryID  *string `json:"category_id"`
	BrandID     *string `json:"brand_id"`
	ModelID     *string `json:"model_id"`
}

// CreateListing POST /api/v1/listings/create-listing: 201 on success.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body createListingRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if strings.TrimSpace(body.Name) == "" {
		return response.Error(c, "Missing required field: name", fiber.StatusBadRequest, nil)
	}
	if body.StartingBid == nil {
		return response.Error(c, "Missing required field: starting_bid", fiber.StatusBadRequest, nil)
	}
	if *body.StartingBid < 0 {
		return response.Error(c, "starting_bid must not be negative", fiber.StatusBadRequest, nil)
	}
	if strings.TrimSpace(body.Description) == "" {
		return response.Error(c, "Missing required field: description", fiber.StatusBadRequest, nil)
	}

	ownerID := middleware.ActorID(c)
	if ownerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	in := listsvc.CreateListingInput{
		Name:        strings.TrimSpace(body.Name),
		StartingBid: *body.StartingBid,
		Description: body.Description,
		URL:         body.URL,
		OwnerID:     ownerID,
	}
	var badID bool
	in.CategoryID, badID = parseOptionalID(body.CategoryID)
	if badID {
		return response.Error(c, "Invalid category_id", fiber.StatusBadRequest, nil)
	}
	in.BrandID, badID = parseOptionalID(body.BrandID)
	if badID {
		return response.Error(c, "Invalid brand_id", fiber.StatusBadRequest, nil)
	}
	in.ModelID, badID = parseOptionalID(body.ModelID)
	if badID {
		return response.Error(c, "Invalid model_id", fiber.StatusBadRequest, nil)
	}

	listing, err := h.Service.CreateListing(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, listsvc.ErrOwnerNotFound), errors.Is(err, listsvc.ErrClassificationNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, listsvc.ErrNotCreated):
			return response.Error(c, listsvc.ErrNotCreated.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GetAllListings GET /api/v1/listings/get-all-listings: optional ?category= / ?brand= / ?model= filter.
func (h *Handlers) GetAllListings(c *fiber.Ctx) error {
	filter := listsvc.ListFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Model:    c.Query("model"),
	}
	data, err := h.Service.ListListings(c.Context(), filter, middleware.ActorID(c))
	if err != nil {
		if errors.Is(err, listsvc.ErrClassificationNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings fetched successfully", data, nil)
}

// GetListingByID GET /api/v1/listings/get-listing/:listing_id: detail with derived fields and comments.
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Service.GetListingByID(c.Context(), listingID, middleware.ActorID(c))
	if err != nil {
		if errors.Is(err, listsvc.ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing fetched successfully", detail, nil)
}

// GetWonListings GET /api/v1/listings/get-won-listings: closed listings won by the session user.
func (h *Handlers) GetWonListings(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	data, err := h.Service.ListWonListings(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Won listings fetched successfully", data, nil)
}

func parseOptionalID(s *string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, false
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, true
	}
	return &id, false
}
