package services

import (
	"context"
	"errors"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
)

type PublicProfile struct {
	Profile   *domain.UserProfile
	Wishlists []*domain.Wishlist
}

type ProfileService struct {
	store repository.Store
}

func NewProfileService(store repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the user's profile; users without one get an empty profile.
func (s *ProfileService) Get(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		var err error
		profile, err = loadProfile(ctx, uow, userID)
		return err
	})
	return profile, err
}

func (s *ProfileService) Update(ctx context.Context, userID domain.UserID, ch domain.ProfileChanges) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		loaded, err := loadProfile(ctx, uow, userID)
		if err != nil {
			return err
		}
		loaded.Update(ch)
		profile = loaded
		return uow.Profiles().Upsert(ctx, loaded)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetPublic returns an active user's profile and public wishlists.
func (s *ProfileService) GetPublic(ctx context.Context, userID domain.UserID) (*PublicProfile, error) {
	var out *PublicProfile
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return domain.NotFound("user not found")
		}
		profile, err := loadProfile(ctx, uow, userID)
		if err != nil {
			return err
		}
		lists, err := uow.Wishlists().ListPublicByOwner(ctx, userID)
		if err != nil {
			return err
		}
		out = &PublicProfile{Profile: profile, Wishlists: lists}
		return nil
	})
	return out, err
}

func loadProfile(ctx context.Context, uow repository.UnitOfWork, userID domain.UserID) (*domain.UserProfile, error) {
	profile, err := uow.Profiles().Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := uow.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return domain.NewUserProfile(userID), nil
}
