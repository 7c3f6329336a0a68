package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing event types.
const (
	EventListingCreated = "CREATED"
	EventBidPlaced      = "BID_PLACED"
	EventListingClosed  = "CLOSED"
)

// ListingEvent is an append-only audit record of a listing's lifecycle.
// EventData carries a small JSON payload specific to the event type.
type ListingEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ListingID uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	ActorID   *uuid.UUID     `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}

func (e *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
