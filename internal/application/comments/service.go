package comments

import (
	"context"
	"errors"
	"strings"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxBodyLength = 1024

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrEmptyBody       = errors.New("Comment text is required")
	ErrBodyTooLong     = errors.New("Comment text is too long")
)

type Service struct {
	DB *gorm.DB
}

// Add appends a comment to a listing. Comments are immutable once created.
// The body is stored trimmed of surrounding whitespace.
func (s *Service) Add(ctx context.Context, userID, listingID uuid.UUID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len(body) > maxBodyLength {
		return nil, ErrBodyTooLong
	}
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&domain.Listing{}).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ListingID: listingID,
		Body:      body,
	}
	if userID != uuid.Nil {
		comment.CommenterID = &userID
	}
	if err := s.DB.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForListing returns a listing's comments, oldest first.
func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID) ([]domain.Comment, error) {
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&domain.Listing{}).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var out []domain.Comment
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).
		Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
