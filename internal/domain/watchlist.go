package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistEntry bookmarks a listing for a user. The composite unique index
// enforces at most one entry per (user, listing) pair.
type WatchlistEntry struct {
	EntryID   uuid.UUID `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_watchlist_user_listing" json:"user_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:idx_watchlist_user_listing" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}

func (w *WatchlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.EntryID == uuid.Nil {
		w.EntryID = uuid.New()
	}
	return nil
}
