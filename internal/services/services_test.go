package services

import (
	"context"
	"testing"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
	"github.com/nextiwant/wishlist-backend/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

var ctx = context.Background()

type fixture struct {
	store     repository.Store
	auth      *AuthService
	wishlists *WishlistService
	shares    *ShareService
	comments  *CommentService
	profiles  *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	_, store := testutil.Store(t)
	hasher := &BcryptHasher{Cost: bcrypt.MinCost}
	tokens := NewJWTTokenService("test-secret", time.Hour)
	return &fixture{
		store:     store,
		auth:      NewAuthService(store, hasher, tokens, 24*time.Hour),
		wishlists: NewWishlistService(store),
		shares:    NewShareService(store, 0),
		comments:  NewCommentService(store, NewModerationFilter()),
		profiles:  NewProfileService(store),
	}
}

func (f *fixture) signUp(t *testing.T, email string) domain.UserID {
	t.Helper()
	res, err := f.auth.SignUp(ctx, email, "secret123")
	if err != nil {
		t.Fatalf("SignUp(%s): %v", email, err)
	}
	return res.User.ID
}

func ptr[T any](v T) *T { return &v }
