package bids

import (
	"context"
	"encoding/json"
	"fmt"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// PlaceBidResult echoes the state after an accepted bid.
type PlaceBidResult struct {
	Bid      *domain.Bid `json:"bid"`
	NewMax   int64       `json:"new_max"`
	BidCount int64       `json:"bid_count"`
}

// CloseResult reports the outcome of closing a listing.
type CloseResult struct {
	ListingID uuid.UUID  `json:"listing_id"`
	WinnerID  *uuid.UUID `json:"winner_id"`
	MaxBid    *int64     `json:"max_bid"`
}

// CurrentMax returns the highest accepted bid amount for a listing, or its
// starting bid when no bids exist, plus the bid count.
func CurrentMax(ctx context.Context, db *gorm.DB, listing *domain.Listing) (int64, int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Bid{}).Where("listing_id = ?", listing.ListingID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return listing.StartingBid, 0, nil
	}
	var max int64
	if err := db.WithContext(ctx).Model(&domain.Bid{}).Where("listing_id = ?", listing.ListingID).
		Select("MAX(amount)").Scan(&max).Error; err != nil {
		return 0, 0, err
	}
	return max, count, nil
}

// PlaceBid accepts a bid when the listing is open, the bidder is not the owner,
// and the amount strictly exceeds the current max (starting bid included).
//
// The read-max-then-insert sequence is not serialized against concurrent
// placements on the same listing; two simultaneous bids at the same amount can
// both be accepted. The bid row and its audit event do share one transaction.
func (s *Service) PlaceBid(ctx context.Context, listingID, bidderID uuid.UUID, amount int64) (*PlaceBidResult, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.Active {
		return nil, ErrListingClosed
	}
	if listing.OwnerID == bidderID {
		return nil, ErrSelfBid
	}

	max, count, err := CurrentMax(ctx, s.DB, &listing)
	if err != nil {
		return nil, err
	}
	if amount <= max {
		return nil, fmt.Errorf("%w (current max: %d)", ErrBidTooLow, max)
	}

	bid := &domain.Bid{
		ListingID: listing.ListingID,
		BidderID:  bidderID,
		Amount:    amount,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(bid).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record bid: %w", err)
	}
	eventDataBytes, _ := json.Marshal(map[string]interface{}{
		"amount":       amount,
		"previous_max": max,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: domain.EventBidPlaced,
		ActorID:   &bidderID,
		EventData: datatypes.JSON(eventDataBytes),
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record bid event: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to record bid: %w", err)
	}

	return &PlaceBidResult{
		Bid:      bid,
		NewMax:   amount,
		BidCount: count + 1,
	}, nil
}

// CloseListing sets the listing inactive and assigns the winner from the
// highest bid; with several bids at the max amount the earliest wins. No
// ownership check: any authenticated user may close, matching the source
// behavior this service replaces. Closing is terminal.
func (s *Service) CloseListing(ctx context.Context, listingID, actorID uuid.UUID) (*CloseResult, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.Active {
		return nil, ErrListingClosed
	}

	result := &CloseResult{ListingID: listing.ListingID}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Bid{}).Where("listing_id = ?", listingID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		var winning domain.Bid
		if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).
			Order("amount DESC, created_at ASC").First(&winning).Error; err != nil {
			return nil, err
		}
		result.WinnerID = &winning.BidderID
		result.MaxBid = &winning.Amount
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	updates := map[string]interface{}{
		"active":    false,
		"winner_id": result.WinnerID,
	}
	if err := tx.Model(&listing).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to close listing: %w", err)
	}
	eventData := map[string]interface{}{"bid_count": count}
	if result.WinnerID != nil {
		eventData["winner_id"] = result.WinnerID.String()
		eventData["max_bid"] = *result.MaxBid
	}
	eventDataBytes, _ := json.Marshal(eventData)
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: domain.EventListingClosed,
		ActorID:   &actorID,
		EventData: datatypes.JSON(eventDataBytes),
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record close event: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to close listing: %w", err)
	}

	return result, nil
}

// ListForListing returns all bids on a listing, highest first.
func (s *Service) ListForListing(ctx context.Context, listingID uuid.UUID) ([]domain.Bid, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var out []domain.Bid
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).
		Order("amount DESC, created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
