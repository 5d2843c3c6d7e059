package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
)

type CreateWishlistRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Visibility  string  `json:"visibility"`
}

type UpdateWishlistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

type CreateItemRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	Priority    *int    `json:"priority"`
}

type UpdateItemRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Link         *string `json:"link"`
	Priority     *int    `json:"priority"`
	IsReceived   *bool   `json:"is_received"`
	ReceivedNote *string `json:"received_note"`
}

type ItemResponse struct {
	ID           uuid.UUID `json:"id"`
	WishlistID   uuid.UUID `json:"wishlist_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Link         *string   `json:"link"`
	Priority     *int      `json:"priority"`
	IsReceived   bool      `json:"is_received"`
	ReceivedNote *string   `json:"received_note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WishlistResponse struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Visibility  string         `json:"visibility"`
	Items       []ItemResponse `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewItemResponse(i *domain.WishlistItem) ItemResponse {
	return ItemResponse{
		ID:           i.ID.UUID,
		WishlistID:   i.WishlistID.UUID,
		Title:        i.Title,
		Description:  i.Description,
		Link:         i.Link,
		Priority:     i.Priority,
		IsReceived:   i.IsReceived,
		ReceivedNote: i.ReceivedNote,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func NewWishlistResponse(w *domain.Wishlist) WishlistResponse {
	items := make([]ItemResponse, len(w.Items))
	for i, item := range w.Items {
		items[i] = NewItemResponse(item)
	}
	return WishlistResponse{
		ID:          w.ID.UUID,
		OwnerID:     w.OwnerID.UUID,
		Name:        w.Name,
		Description: w.Description,
		Visibility:  string(w.Visibility),
		Items:       items,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func NewWishlistListResponse(lists []*domain.Wishlist) []WishlistResponse {
	out := make([]WishlistResponse, len(lists))
	for i, w := range lists {
		out[i] = NewWishlistResponse(w)
	}
	return out
}
