package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/services"
)

const DateLayout = "2006-01-02"

// UpdateProfileRequest fields are optional; "" clears a text field.
// Birthday uses DateLayout.
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Birthday  *string `json:"birthday"`
	PhotoURL  *string `json:"photo_url"`
}

type ProfileResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Username  *string   `json:"username"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Birthday  *string   `json:"birthday"`
	PhotoURL  *string   `json:"photo_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PublicProfileResponse struct {
	Profile   ProfileResponse    `json:"profile"`
	Wishlists []WishlistResponse `json:"wishlists"`
}

func NewProfileResponse(p *domain.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		UserID:    p.UserID.UUID,
		Name:      p.Name(),
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		PhotoURL:  p.PhotoURL,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Birthday != nil {
		b := p.Birthday.Format(DateLayout)
		resp.Birthday = &b
	}
	return resp
}

func NewPublicProfileResponse(p *services.PublicProfile) PublicProfileResponse {
	return PublicProfileResponse{
		Profile:   NewProfileResponse(p.Profile),
		Wishlists: NewWishlistListResponse(p.Wishlists),
	}
}
