package watchlist

import (
	"context"
	"errors"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("Listing not found")

type Service struct {
	DB *gorm.DB
}

// Toggle flips watchlist membership for (user, listing): delete the entry if it
// exists, insert one otherwise. Returns whether the user is watching afterward.
func (s *Service) Toggle(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&domain.Listing{}).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrListingNotFound
		}
		return false, err
	}

	var entry domain.WatchlistEntry
	err := s.DB.WithContext(ctx).Where("user_id = ? AND listing_id = ?", userID, listingID).First(&entry).Error
	switch {
	case err == nil:
		if err := s.DB.WithContext(ctx).Delete(&entry).Error; err != nil {
			return true, err
		}
		return false, nil
	case err == gorm.ErrRecordNotFound:
		entry = domain.WatchlistEntry{UserID: userID, ListingID: listingID}
		if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// ListForUser returns the listings on a user's watchlist, newest entry first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	var entries []domain.WatchlistEntry
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []domain.Listing{}, nil
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ListingID)
	}
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, err
	}
	// Preserve watchlist order.
	byID := make(map[uuid.UUID]domain.Listing, len(listings))
	for _, l := range listings {
		byID[l.ListingID] = l
	}
	out := make([]domain.Listing, 0, len(entries))
	for _, e := range entries {
		if l, ok := byID[e.ListingID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
