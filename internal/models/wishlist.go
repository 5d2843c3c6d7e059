package models

import (
	"time"

	"github.com/google/uuid"
)

type Wishlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Visibility  string    `gorm:"size:20;not null;default:'private';index" json:"visibility"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// WishlistItem rows carry their slot in the owning wishlist so insertion order
// survives a round trip.
type WishlistItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WishlistID   uuid.UUID `gorm:"type:uuid;not null;index:idx_items_wishlist_position" json:"wishlist_id"`
	Position     int       `gorm:"not null;default:0;index:idx_items_wishlist_position" json:"-"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	Link         *string   `gorm:"size:2048" json:"link"`
	Priority     *int      `json:"priority"`
	IsReceived   bool      `gorm:"not null;default:false" json:"is_received"`
	ReceivedNote *string   `gorm:"type:text" json:"received_note"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

type WishlistItemComment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// PublicWishlistShare is keyed by wishlist, so a wishlist has at most one.
type PublicWishlistShare struct {
	WishlistID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"wishlist_id"`
	Token       string     `gorm:"size:128;not null;uniqueIndex" json:"token"`
	IsClaimable bool       `gorm:"not null;default:false" json:"is_claimable"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`
}
