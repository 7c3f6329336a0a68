package listings

import (
	"context"
	"encoding/json"
	"fmt"

	"gavel-backend/internal/application/bids"
	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	Name        string
	StartingBid int64
	Description string
	URL         string
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	ModelID     *uuid.UUID
	OwnerID     uuid.UUID
}

// ListFilter selects listings by one classification value (reference-table name).
// Empty filter means all listings.
type ListFilter struct {
	Category string
	Brand    string
	Model    string
}

// ListingSummary is a listing plus the derived display fields.
type ListingSummary struct {
	domain.Listing
	CurrentMax int64 `json:"current_max"`
	BidCount   int64 `json:"bid_count"`
	Watching   bool  `json:"watching"`
}

// ListingDetail is the single-listing view: summary fields plus comments.
type ListingDetail struct {
	ListingSummary
	Comments []domain.Comment `json:"comments"`
}

// CreateListing validates references and creates an open listing with no
// winner. The listing row and its CREATED event commit in one transaction.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	var owner domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", in.OwnerID).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if in.CategoryID != nil {
		if err := s.DB.WithContext(ctx).Where("category_id = ?", *in.CategoryID).First(&domain.Category{}).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrClassificationNotFound
			}
			return nil, err
		}
	}
	if in.BrandID != nil {
		if err := s.DB.WithContext(ctx).Where("brand_id = ?", *in.BrandID).First(&domain.Brand{}).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrClassificationNotFound
			}
			return nil, err
		}
	}
	if in.ModelID != nil {
		if err := s.DB.WithContext(ctx).Where("model_id = ?", *in.ModelID).First(&domain.ProductModel{}).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrClassificationNotFound
			}
			return nil, err
		}
	}

	listing := &domain.Listing{
		Name:        in.Name,
		StartingBid: in.StartingBid,
		Description: in.Description,
		URL:         in.URL,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		ModelID:     in.ModelID,
		OwnerID:     in.OwnerID,
		Active:      true,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		// Integrity violations surface as the generic "not created" condition.
		return nil, fmt.Errorf("%w: %v", ErrNotCreated, err)
	}
	eventDataBytes, _ := json.Marshal(map[string]interface{}{
		"starting_bid": listing.StartingBid,
		"name":         listing.Name,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: domain.EventListingCreated,
		ActorID:   &in.OwnerID,
		EventData: datatypes.JSON(eventDataBytes),
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrNotCreated, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCreated, err)
	}
	return listing, nil
}

// ListListings returns listing summaries, optionally filtered by a single
// classification value. ViewerID controls the Watching field; uuid.Nil means
// an anonymous viewer. Pure read, no side effects.
func (s *Service) ListListings(ctx context.Context, filter ListFilter, viewerID uuid.UUID) ([]ListingSummary, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Listing{})
	switch {
	case filter.Category != "":
		var cat domain.Category
		if err := s.DB.WithContext(ctx).Where("name = ?", filter.Category).First(&cat).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrClassificationNotFound
			}
			return nil, err
		}
		q = q.Where("category_id = ?", cat.CategoryID)
	case filter.Brand != "":
		var brand domain.Brand
		if err := s.DB.WithContext(ctx).Where("name = ?", filter.Brand).First(&brand).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrClassificationNotFound
			}
			return nil, err
		}
		q = q.Where("brand_id = ?", brand.BrandID)
	case filter.Model != "":
		var model domain.ProductModel
		if err := s.DB.WithContext(ctx).Where("name = ?", filter.Model).First(&model).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrClassificationNotFound
			}
			return nil, err
		}
		q = q.Where("model_id = ?", model.ModelID)
	}

	var rows []domain.Listing
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.summarize(ctx, rows, viewerID)
}

// GetListingByID returns the single-listing view with derived fields and
// comments, oldest comment first.
func (s *Service) GetListingByID(ctx context.Context, listingID, viewerID uuid.UUID) (*ListingDetail, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	summaries, err := s.summarize(ctx, []domain.Listing{listing}, viewerID)
	if err != nil {
		return nil, err
	}
	var comments []domain.Comment
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return &ListingDetail{ListingSummary: summaries[0], Comments: comments}, nil
}

// ListWonListings returns closed listings won by the given user.
func (s *Service) ListWonListings(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	var rows []domain.Listing
	if err := s.DB.WithContext(ctx).Where("winner_id = ?", userID).
		Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) summarize(ctx context.Context, rows []domain.Listing, viewerID uuid.UUID) ([]ListingSummary, error) {
	out := make([]ListingSummary, 0, len(rows))
	for i := range rows {
		max, count, err := bids.CurrentMax(ctx, s.DB, &rows[i])
		if err != nil {
			return nil, err
		}
		watching := false
		if viewerID != uuid.Nil {
			var n int64
			if err := s.DB.WithContext(ctx).Model(&domain.WatchlistEntry{}).
				Where("user_id = ? AND listing_id = ?", viewerID, rows[i].ListingID).Count(&n).Error; err != nil {
				return nil, err
			}
			watching = n > 0
		}
		out = append(out, ListingSummary{
			Listing:    rows[i],
			CurrentMax: max,
			BidCount:   count,
			Watching:   watching,
		})
	}
	return out, nil
}
