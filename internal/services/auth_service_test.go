package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nextiwant/wishlist-backend/internal/domain"
)

func TestSignUpAndLogin(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth.SignUp(ctx, " Alice@Example.com ", "secret123")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if res.User.Email != "alice@example.com" || res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("access token rejected: %v", err)
	}
	if sub, _ := claims.GetSubject(); sub != res.User.ID.String() {
		t.Fatalf("access token subject = %q, want %s", sub, res.User.ID)
	}

	if _, err := f.auth.SignUp(ctx, "alice@example.com", "another1"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
	if _, err := f.auth.SignUp(ctx, "bob@example.com", "short"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if _, err := f.auth.Login(ctx, "ALICE@example.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, wrongPassword := f.auth.Login(ctx, "alice@example.com", "nope")
	_, unknownEmail := f.auth.Login(ctx, "nobody@example.com", "secret123")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("login failures must be indistinguishable: %v / %v", wrongPassword, unknownEmail)
	}

	profile, err := f.profiles.Get(ctx, res.User.ID)
	if err != nil || profile.UserID != res.User.ID {
		t.Fatalf("profile not created at signup: %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	first, err := f.auth.SignUp(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	second, err := f.auth.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}
	if _, err := f.auth.Refresh(ctx, first.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("old refresh token still valid: %v", err)
	}

	if err := f.auth.Logout(ctx, second.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := f.auth.Refresh(ctx, second.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("logged out token still valid: %v", err)
	}
	if _, err := f.auth.Refresh(ctx, "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefresh_Expired(t *testing.T) {
	f := newFixture(t)
	res, _ := f.auth.SignUp(ctx, "a@example.com", "secret123")
	f.auth.now = func() time.Time { return time.Now().UTC().Add(48 * time.Hour) }
	if _, err := f.auth.Refresh(ctx, res.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired refresh token accepted: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	id := f.signUp(t, "a@example.com")

	if err := f.auth.ChangePassword(ctx, id, "wrong", "newsecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := f.auth.ChangePassword(ctx, id, "secret123", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := f.auth.Login(ctx, "a@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still works: %v", err)
	}
	if _, err := f.auth.Login(ctx, "a@example.com", "newsecret"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestDeactivateAndReactivate(t *testing.T) {
	f := newFixture(t)
	res, _ := f.auth.SignUp(ctx, "a@example.com", "secret123")

	if err := f.auth.Deactivate(ctx, res.User.ID, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := f.auth.Deactivate(ctx, res.User.ID, "secret123"); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := f.auth.Login(ctx, "a@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive account logged in: %v", err)
	}
	if _, err := f.auth.Refresh(ctx, res.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token survived deactivation: %v", err)
	}

	if _, err := f.auth.Reactivate(ctx, "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := f.auth.Reactivate(ctx, "a@example.com", "secret123"); err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if _, err := f.auth.Login(ctx, "a@example.com", "secret123"); err != nil {
		t.Fatalf("Login after reactivation: %v", err)
	}
}
