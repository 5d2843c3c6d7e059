package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
)

// ErrShareNotFound covers missing, expired and orphaned shares alike.
var ErrShareNotFound = domain.NotFound("shared wishlist not found")

type PublicWishlist struct {
	Wishlist  *domain.Wishlist
	Share     *domain.PublicWishlistShare
	OwnerName string
}

type ShareService struct {
	store      repository.Store
	defaultTTL time.Duration
	now        func() time.Time
}

// NewShareService applies defaultTTL to new shares created without an expiry;
// zero leaves them open-ended.
func NewShareService(store repository.Store, defaultTTL time.Duration) *ShareService {
	return &ShareService{store: store, defaultTTL: defaultTTL, now: utcNow}
}

// CreateShare publishes a wishlist, or updates its existing share in place.
// The token of an existing share never changes.
func (s *ShareService) CreateShare(ctx context.Context, owner domain.UserID, wishlistID domain.WishlistID, claimable bool, expiresAt *time.Time) (*domain.PublicWishlistShare, error) {
	var share *domain.PublicWishlistShare
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		if _, err := loadOwnedWishlist(ctx, uow, owner, wishlistID); err != nil {
			return err
		}

		existing, err := uow.Shares().GetByWishlist(ctx, wishlistID)
		switch {
		case err == nil:
			existing.Reissue(claimable, expiresAt)
			share = existing
		case errors.Is(err, domain.ErrNotFound):
			token, err := domain.GenerateShareToken()
			if err != nil {
				return err
			}
			if expiresAt == nil && s.defaultTTL > 0 {
				exp := s.now().Add(s.defaultTTL)
				expiresAt = &exp
			}
			share, err = domain.NewPublicWishlistShare(wishlistID, token, claimable, expiresAt)
			if err != nil {
				return err
			}
			share.CreatedAt = s.now()
		default:
			return err
		}
		return uow.Shares().Upsert(ctx, share)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("wishlist shared", "user_id", owner.String(), "wishlist_id", wishlistID.String(), "action", "share", "claimable", claimable)
	return share, nil
}

// RevokeShare removes the share of an owned wishlist. Revoking twice is fine.
func (s *ShareService) RevokeShare(ctx context.Context, owner domain.UserID, wishlistID domain.WishlistID) error {
	return repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		if _, err := loadOwnedWishlist(ctx, uow, owner, wishlistID); err != nil {
			return err
		}
		return uow.Shares().Delete(ctx, wishlistID)
	})
}

func (s *ShareService) GetPublicWishlist(ctx context.Context, token domain.ShareToken) (*PublicWishlist, error) {
	var out *PublicWishlist
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		share, w, err := s.resolve(ctx, uow, token)
		if err != nil {
			return err
		}
		name, err := displayName(ctx, uow, w.OwnerID)
		if err != nil {
			return err
		}
		out = &PublicWishlist{Wishlist: w, Share: share, OwnerName: name}
		return nil
	})
	return out, err
}

// Claim copies the shared wishlist to newOwner. ok is false, with nothing
// written, when the token cannot be claimed. The source is never modified and
// the same token can be claimed again.
func (s *ShareService) Claim(ctx context.Context, token domain.ShareToken, newOwner domain.UserID) (clone *domain.Wishlist, ok bool, err error) {
	err = repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		share, w, err := s.resolve(ctx, uow, token)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !share.CanBeClaimed(s.now()) {
			return nil
		}
		clone = w.Clone(newOwner)
		return uow.Wishlists().Add(ctx, clone)
	})
	if err != nil {
		return nil, false, err
	}
	if clone == nil {
		return nil, false, nil
	}
	slog.Info("wishlist claimed", "user_id", newOwner.String(), "wishlist_id", clone.ID.String(), "action", "claim")
	return clone, true, nil
}

// PurgeExpired deletes shares whose expiry has passed.
func (s *ShareService) PurgeExpired(ctx context.Context) (int64, error) {
	var n int64
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		var err error
		n, err = uow.Shares().DeleteExpired(ctx, s.now())
		return err
	})
	return n, err
}

// resolve returns an active share and its wishlist, or ErrShareNotFound.
func (s *ShareService) resolve(ctx context.Context, uow repository.UnitOfWork, token domain.ShareToken) (*domain.PublicWishlistShare, *domain.Wishlist, error) {
	if token == "" {
		return nil, nil, ErrShareNotFound
	}
	share, err := uow.Shares().GetByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, ErrShareNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !share.IsActive(s.now()) {
		return nil, nil, ErrShareNotFound
	}
	w, err := uow.Wishlists().GetByID(ctx, share.WishlistID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, ErrShareNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return share, w, nil
}

func displayName(ctx context.Context, uow repository.UnitOfWork, userID domain.UserID) (string, error) {
	profile, err := uow.Profiles().Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return profile.Name(), nil
}
