package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
)

var ErrWishlistNotFound = domain.NotFound("wishlist not found")

type WishlistInput struct {
	Name        string
	Description *string
	Visibility  domain.Visibility
}

// WishlistChanges is a partial update; nil fields are left alone and an empty
// description clears it.
type WishlistChanges struct {
	Name        *string
	Description *string
	Visibility  *domain.Visibility
}

type ItemInput struct {
	Title       string
	Description *string
	Link        *string
	Priority    *int
}

type WishlistService struct {
	store repository.Store
}

func NewWishlistService(store repository.Store) *WishlistService {
	return &WishlistService{store: store}
}

func (s *WishlistService) Create(ctx context.Context, owner domain.UserID, in WishlistInput) (*domain.Wishlist, error) {
	w, err := domain.NewWishlist(owner, in.Name, emptyAsNil(in.Description), in.Visibility)
	if err != nil {
		return nil, err
	}
	err = repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		return uow.Wishlists().Add(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("wishlist created", "user_id", owner.String(), "wishlist_id", w.ID.String(), "action", "create_wishlist")
	return w, nil
}

// Get returns a wishlist to its owner, or to anyone when it is public.
func (s *WishlistService) Get(ctx context.Context, viewer domain.UserID, id domain.WishlistID) (*domain.Wishlist, error) {
	var w *domain.Wishlist
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		loaded, err := loadWishlist(ctx, uow, id)
		if err != nil {
			return err
		}
		if !loaded.IsOwnedBy(viewer) && loaded.Visibility != domain.VisibilityPublic {
			return ErrWishlistNotFound
		}
		w = loaded
		return nil
	})
	return w, err
}

func (s *WishlistService) List(ctx context.Context, owner domain.UserID) ([]*domain.Wishlist, error) {
	var lists []*domain.Wishlist
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		var err error
		lists, err = uow.Wishlists().ListByOwner(ctx, owner)
		return err
	})
	return lists, err
}

func (s *WishlistService) Update(ctx context.Context, owner domain.UserID, id domain.WishlistID, ch WishlistChanges) (*domain.Wishlist, error) {
	var w *domain.Wishlist
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		loaded, err := loadOwnedWishlist(ctx, uow, owner, id)
		if err != nil {
			return err
		}
		if ch.Name != nil {
			if err := loaded.Rename(*ch.Name); err != nil {
				return err
			}
		}
		if ch.Description != nil {
			loaded.ChangeDescription(emptyAsNil(ch.Description))
		}
		if ch.Visibility != nil {
			if err := loaded.SetVisibility(*ch.Visibility); err != nil {
				return err
			}
		}
		w = loaded
		return uow.Wishlists().Update(ctx, loaded)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WishlistService) Delete(ctx context.Context, owner domain.UserID, id domain.WishlistID) error {
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		if _, err := loadOwnedWishlist(ctx, uow, owner, id); err != nil {
			return err
		}
		return uow.Wishlists().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	slog.Info("wishlist deleted", "user_id", owner.String(), "wishlist_id", id.String(), "action", "delete_wishlist")
	return nil
}

func (s *WishlistService) AddItem(ctx context.Context, owner domain.UserID, wishlistID domain.WishlistID, in ItemInput) (*domain.WishlistItem, error) {
	item, err := domain.NewWishlistItem(in.Title, emptyAsNil(in.Description), emptyAsNil(in.Link), in.Priority)
	if err != nil {
		return nil, err
	}
	err = repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		w, err := loadOwnedWishlist(ctx, uow, owner, wishlistID)
		if err != nil {
			return err
		}
		if err := w.AddItem(item); err != nil {
			return err
		}
		return uow.Wishlists().Update(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) UpdateItem(ctx context.Context, owner domain.UserID, itemID domain.ItemID, ch domain.ItemChanges) (*domain.WishlistItem, error) {
	var item *domain.WishlistItem
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		w, err := loadWishlistOfItem(ctx, uow, owner, itemID)
		if err != nil {
			return err
		}
		item, err = w.UpdateItem(itemID, ch)
		if err != nil {
			return err
		}
		return uow.Wishlists().Update(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) DeleteItem(ctx context.Context, owner domain.UserID, itemID domain.ItemID) error {
	return repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		w, err := loadWishlistOfItem(ctx, uow, owner, itemID)
		if err != nil {
			return err
		}
		w.RemoveItem(itemID)
		return uow.Wishlists().Update(ctx, w)
	})
}

func loadWishlist(ctx context.Context, uow repository.UnitOfWork, id domain.WishlistID) (*domain.Wishlist, error) {
	w, err := uow.Wishlists().GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrWishlistNotFound
	}
	return w, err
}

// loadOwnedWishlist hides other users' wishlists behind NotFound.
func loadOwnedWishlist(ctx context.Context, uow repository.UnitOfWork, owner domain.UserID, id domain.WishlistID) (*domain.Wishlist, error) {
	w, err := loadWishlist(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if !w.IsOwnedBy(owner) {
		return nil, ErrWishlistNotFound
	}
	return w, nil
}

func loadWishlistOfItem(ctx context.Context, uow repository.UnitOfWork, owner domain.UserID, itemID domain.ItemID) (*domain.Wishlist, error) {
	item, err := uow.Items().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	w, err := loadOwnedWishlist(ctx, uow, owner, item.WishlistID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("item not found")
	}
	if err != nil {
		return nil, err
	}
	if w.Item(itemID) == nil {
		return nil, domain.NotFound("item not found")
	}
	return w, nil
}

func emptyAsNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
