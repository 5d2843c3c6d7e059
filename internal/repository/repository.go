// Package repository is the persistence port the services depend on. Every
// use case works through one UnitOfWork obtained from a Store; nothing is
// visible to other requests until Commit.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
)

// Lookups that miss return an error wrapping domain.ErrNotFound.

type UserRepository interface {
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Add(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id domain.UserID) error
}

type ProfileRepository interface {
	Get(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error)
	// ListByUserIDs returns the profiles that exist, keyed by user.
	ListByUserIDs(ctx context.Context, ids []domain.UserID) (map[domain.UserID]*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	Delete(ctx context.Context, userID domain.UserID) error
}

// WishlistRepository persists the aggregate: the root row and its items.
type WishlistRepository interface {
	GetByID(ctx context.Context, id domain.WishlistID) (*domain.Wishlist, error)
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Wishlist, error)
	ListPublicByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Wishlist, error)
	Add(ctx context.Context, wishlist *domain.Wishlist) error
	// Update writes the root row, inserts items added through the aggregate,
	// updates items changed through it and deletes items (and their comments)
	// removed from it. Other item rows are not touched.
	Update(ctx context.Context, wishlist *domain.Wishlist) error
	// Delete removes the wishlist, its items, their comments and its share.
	Delete(ctx context.Context, id domain.WishlistID) error
}

type ItemRepository interface {
	GetByID(ctx context.Context, id domain.ItemID) (*domain.WishlistItem, error)
	ListByWishlist(ctx context.Context, wishlistID domain.WishlistID) ([]*domain.WishlistItem, error)
	Upsert(ctx context.Context, item *domain.WishlistItem, position int) error
	Delete(ctx context.Context, id domain.ItemID) error
}

type ShareRepository interface {
	GetByWishlist(ctx context.Context, wishlistID domain.WishlistID) (*domain.PublicWishlistShare, error)
	// GetByToken ignores expiry; callers decide what an inactive share means.
	GetByToken(ctx context.Context, token domain.ShareToken) (*domain.PublicWishlistShare, error)
	Upsert(ctx context.Context, share *domain.PublicWishlistShare) error
	Delete(ctx context.Context, wishlistID domain.WishlistID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type CommentRepository interface {
	GetByID(ctx context.Context, id domain.CommentID) (*domain.WishlistItemComment, error)
	// ListByItemIDs orders by creation time, then id.
	ListByItemIDs(ctx context.Context, itemIDs []domain.ItemID) ([]*domain.WishlistItemComment, error)
	Add(ctx context.Context, comment *domain.WishlistItemComment) error
	DeleteByItemIDs(ctx context.Context, itemIDs []domain.ItemID) error
}

// RefreshToken is a stored refresh credential. Only the hash is kept.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    domain.UserID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
}

type RefreshTokenRepository interface {
	Add(ctx context.Context, token *RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID domain.UserID) error
}

type UnitOfWork interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Wishlists() WishlistRepository
	Items() ItemRepository
	Shares() ShareRepository
	Comments() CommentRepository
	RefreshTokens() RefreshTokenRepository
	Commit() error
	// Rollback is safe to call after Commit; it then does nothing.
	Rollback() error
}

type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
