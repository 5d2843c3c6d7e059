package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// PublicWishlistShare grants token-based read access to one wishlist and,
// when IsClaimable is set, lets another user clone it.
type PublicWishlistShare struct {
	WishlistID  WishlistID
	Token       ShareToken
	IsClaimable bool
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

func NewPublicWishlistShare(wishlistID WishlistID, token ShareToken, claimable bool, expiresAt *time.Time) (*PublicWishlistShare, error) {
	if token == "" {
		return nil, Validation("share token cannot be empty")
	}
	return &PublicWishlistShare{
		WishlistID:  wishlistID,
		Token:       token,
		IsClaimable: claimable,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   cloneTime(expiresAt),
	}, nil
}

// IsActive is true until now passes ExpiresAt; a nil expiry never lapses.
func (s *PublicWishlistShare) IsActive(now time.Time) bool {
	return s.ExpiresAt == nil || !now.After(*s.ExpiresAt)
}

// CanBeClaimed is the claim precondition on the share itself.
func (s *PublicWishlistShare) CanBeClaimed(now time.Time) bool {
	return s.IsClaimable && s.IsActive(now)
}

// Reissue applies a repeated share request in place. The token never changes.
func (s *PublicWishlistShare) Reissue(claimable bool, expiresAt *time.Time) {
	s.IsClaimable = claimable
	if expiresAt != nil {
		s.ExpiresAt = cloneTime(expiresAt)
	}
}

// GenerateShareToken returns 32 random bytes, URL-safe base64 without padding.
func GenerateShareToken() (ShareToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return ShareToken(base64.RawURLEncoding.EncodeToString(raw)), nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
