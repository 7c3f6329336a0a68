package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing is an auctionable item. Active listings accept bids; closing a listing
// is terminal and assigns the winner from the highest bid, if any. WinnerID must
// stay unset while Active is true.
type Listing struct {
	ListingID   uuid.UUID      `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	StartingBid int64          `gorm:"column:starting_bid;not null" json:"starting_bid"`
	Description string         `gorm:"column:description;type:varchar(254);not null" json:"description"`
	CategoryID  *uuid.UUID     `gorm:"column:category_id;type:uuid" json:"category_id"`
	BrandID     *uuid.UUID     `gorm:"column:brand_id;type:uuid" json:"brand_id"`
	ModelID     *uuid.UUID     `gorm:"column:model_id;type:uuid" json:"model_id"`
	URL         string         `gorm:"column:url;type:varchar(254)" json:"url"`
	OwnerID     uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	Active      bool           `gorm:"column:active;default:true" json:"active"`
	WinnerID    *uuid.UUID     `gorm:"column:winner_id;type:uuid;index" json:"winner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
