package listingevents

import (
	"context"
	"errors"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("Listing not found")

// Service reads the listing audit trail. Events are written by the listings
// and bids services inside their own transactions.
type Service struct {
	DB *gorm.DB
}

func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID) ([]domain.ListingEvent, error) {
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&domain.Listing{}).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var events []domain.ListingEvent
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).
		Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
