package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/models"
)

func toUserRow(u *domain.User) models.User {
	return models.User{
		ID:           u.ID.UUID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserRow(r *models.User) *domain.User {
	return &domain.User{
		ID:           domain.UserID{UUID: r.ID},
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toProfileRow(p *domain.UserProfile) models.UserProfile {
	return models.UserProfile{
		UserID:    p.UserID.UUID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Birthday:  p.Birthday,
		PhotoURL:  p.PhotoURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromProfileRow(r *models.UserProfile) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:    domain.UserID{UUID: r.UserID},
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthday:  r.Birthday,
		PhotoURL:  r.PhotoURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toWishlistRow(w *domain.Wishlist) models.Wishlist {
	return models.Wishlist{
		ID:          w.ID.UUID,
		OwnerID:     w.OwnerID.UUID,
		Name:        w.Name,
		Description: w.Description,
		Visibility:  string(w.Visibility),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func fromWishlistRow(r *models.Wishlist) *domain.Wishlist {
	return &domain.Wishlist{
		ID:          domain.WishlistID{UUID: r.ID},
		OwnerID:     domain.UserID{UUID: r.OwnerID},
		Name:        r.Name,
		Description: r.Description,
		Visibility:  domain.Visibility(r.Visibility),
		Items:       []*domain.WishlistItem{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toItemRow(i *domain.WishlistItem, position int) models.WishlistItem {
	return models.WishlistItem{
		ID:           i.ID.UUID,
		WishlistID:   i.WishlistID.UUID,
		Position:     position,
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

func fromItemRow(r *models.WishlistItem) *domain.WishlistItem {
	return &domain.WishlistItem{
		ID:           domain.ItemID{UUID: r.ID},
		WishlistID:   domain.WishlistID{UUID: r.WishlistID},
		Title:        r.Title,
		Description:  r.Description,
		Link:         r.Link,
		Priority:     r.Priority,
		IsReceived:   r.IsReceived,
		ReceivedNote: r.ReceivedNote,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toShareRow(s *domain.PublicWishlistShare) models.PublicWishlistShare {
	return models.PublicWishlistShare{
		WishlistID:  s.WishlistID.UUID,
		Token:       string(s.Token),
		IsClaimable: s.IsClaimable,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   utcPtr(s.ExpiresAt),
	}
}

func fromShareRow(r *models.PublicWishlistShare) *domain.PublicWishlistShare {
	return &domain.PublicWishlistShare{
		WishlistID:  domain.WishlistID{UUID: r.WishlistID},
		Token:       domain.ShareToken(r.Token),
		IsClaimable: r.IsClaimable,
		CreatedAt:   r.CreatedAt,
		ExpiresAt:   r.ExpiresAt,
	}
}

func toCommentRow(c *domain.WishlistItemComment) models.WishlistItemComment {
	row := models.WishlistItemComment{
		ID:        c.ID.UUID,
		ItemID:    c.ItemID.UUID,
		UserID:    c.UserID.UUID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.UUID
		row.ParentID = &parent
	}
	return row
}

func fromCommentRow(r *models.WishlistItemComment) *domain.WishlistItemComment {
	c := &domain.WishlistItemComment{
		ID:        domain.CommentID{UUID: r.ID},
		ItemID:    domain.ItemID{UUID: r.ItemID},
		UserID:    domain.UserID{UUID: r.UserID},
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ParentID != nil {
		c.ParentID = &domain.CommentID{UUID: *r.ParentID}
	}
	return c
}

func itemUUIDs(ids []domain.ItemID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.UUID
	}
	return out
}

func userUUIDs(ids []domain.UserID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.UUID
	}
	return out
}

// utcPtr stores expiries in UTC so SQL comparisons against now agree.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
