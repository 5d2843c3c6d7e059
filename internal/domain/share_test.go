package domain

import (
	"errors"
	"testing"
	"time"
)

func TestShareIsActive(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	open, _ := NewPublicWishlistShare(NewWishlistID(), "t1", false, nil)
	expired, _ := NewPublicWishlistShare(NewWishlistID(), "t2", true, &past)
	live, _ := NewPublicWishlistShare(NewWishlistID(), "t3", true, &future)
	edge, _ := NewPublicWishlistShare(NewWishlistID(), "t4", true, &now)

	if !open.IsActive(now) {
		t.Fatalf("share without expiry should be active")
	}
	if expired.IsActive(now) || expired.CanBeClaimed(now) {
		t.Fatalf("expired share reported active")
	}
	if !live.IsActive(now) || !live.CanBeClaimed(now) {
		t.Fatalf("future expiry should be active and claimable")
	}
	if !edge.IsActive(now) {
		t.Fatalf("share is active up to and including its expiry instant")
	}
	if open.CanBeClaimed(now) {
		t.Fatalf("non-claimable share reported claimable")
	}
}

func TestShareReissue_KeepsToken(t *testing.T) {
	s, err := NewPublicWishlistShare(NewWishlistID(), "abc", false, nil)
	if err != nil {
		t.Fatalf("NewPublicWishlistShare: %v", err)
	}
	s.Reissue(true, nil)
	if s.Token != "abc" || !s.IsClaimable || s.ExpiresAt != nil {
		t.Fatalf("unexpected share after reissue: %+v", s)
	}
	exp := time.Now().Add(time.Hour)
	s.Reissue(false, &exp)
	if s.IsClaimable || s.ExpiresAt == nil || !s.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected share after second reissue: %+v", s)
	}
}

func TestNewShare_RequiresToken(t *testing.T) {
	if _, err := NewPublicWishlistShare(NewWishlistID(), "", false, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateShareToken_Unique(t *testing.T) {
	seen := make(map[ShareToken]bool)
	for i := 0; i < 50; i++ {
		tok, err := GenerateShareToken()
		if err != nil {
			t.Fatalf("GenerateShareToken: %v", err)
		}
		if len(tok) != 43 {
			t.Fatalf("unexpected token length %d", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}
