package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/services"
)

type CreateShareRequest struct {
	IsClaimable bool       `json:"is_claimable"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type ShareResponse struct {
	WishlistID  uuid.UUID  `json:"wishlist_id"`
	Token       string     `json:"token"`
	IsClaimable bool       `json:"is_claimable"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type PublicWishlistResponse struct {
	WishlistResponse
	OwnerName   string     `json:"owner_name"`
	IsClaimable bool       `json:"is_claimable"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	ItemID    uuid.UUID  `json:"item_id"`
	UserID    uuid.UUID  `json:"user_id"`
	ParentID  *uuid.UUID `json:"parent_id"`
	Content   string     `json:"content"`
	UserName  string     `json:"user_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewShareResponse(s *domain.PublicWishlistShare) ShareResponse {
	return ShareResponse{
		WishlistID:  s.WishlistID.UUID,
		Token:       string(s.Token),
		IsClaimable: s.IsClaimable,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
	}
}

func NewPublicWishlistResponse(p *services.PublicWishlist) PublicWishlistResponse {
	return PublicWishlistResponse{
		WishlistResponse: NewWishlistResponse(p.Wishlist),
		OwnerName:        p.OwnerName,
		IsClaimable:      p.Share.IsClaimable,
		ExpiresAt:        p.Share.ExpiresAt,
	}
}

func NewCommentResponse(v services.CommentView) CommentResponse {
	c := v.Comment
	resp := CommentResponse{
		ID:        c.ID.UUID,
		ItemID:    c.ItemID.UUID,
		UserID:    c.UserID.UUID,
		Content:   c.Content,
		UserName:  v.AuthorName,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.UUID
		resp.ParentID = &parent
	}
	return resp
}
