package comments

import (
	"errors"
	"strings"

	commentsvc "gavel-backend/internal/application/comments"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *commentsvc.Service
}

type addCommentRequest struct {
	ListingID string `json:"listing_id"`
	Body      string `json:"body"`
}

// AddComment POST /api/v1/comments/add-comment.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	var body addCommentRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
	}
	if strings.TrimSpace(body.Body) == "" {
		return response.Error(c, commentsvc.ErrEmptyBody.Error(), fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	userID := middleware.ActorID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	comment, err := h.Service.Add(c.Context(), userID, listingID, body.Body)
	if err != nil {
		switch {
		case errors.Is(err, commentsvc.ErrListingNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, commentsvc.ErrEmptyBody), errors.Is(err, commentsvc.ErrBodyTooLong):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Comment added successfully", comment, nil)
}

// GetComments GET /api/v1/comments/get-comments/:listing_id: oldest first.
func (h *Handlers) GetComments(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	data, err := h.Service.ListForListing(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, commentsvc.ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Comments fetched successfully", data, nil)
}
