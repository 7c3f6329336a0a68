package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an append-only remark on a listing. CommenterID is nullable so
// comments survive account deletion.
type Comment struct {
	CommentID   uuid.UUID  `gorm:"column:comment_id;type:uuid;primaryKey" json:"comment_id"`
	ListingID   uuid.UUID  `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	CommenterID *uuid.UUID `gorm:"column:commenter_id;type:uuid" json:"commenter_id"`
	Body        string     `gorm:"column:body;type:varchar(1024);not null" json:"body"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.CommentID == uuid.Nil {
		c.CommentID = uuid.New()
	}
	return nil
}
