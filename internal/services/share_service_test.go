package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/domain"
)

func TestBirthdayBikeClaimScenario(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	v := f.signUp(t, "v@example.com")

	w, err := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday", Visibility: domain.VisibilityPrivate})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bike, err := f.wishlists.AddItem(ctx, u, w.ID, ItemInput{Title: "Bike", Priority: ptr(1)})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	public := domain.VisibilityPublic
	if _, err := f.wishlists.Update(ctx, u, w.ID, WishlistChanges{Visibility: &public}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	share, err := f.shares.CreateShare(ctx, u, w.ID, true, nil)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	clone, ok, err := f.shares.Claim(ctx, share.Token, v)
	if err != nil || !ok {
		t.Fatalf("Claim: ok=%v err=%v", ok, err)
	}
	if clone.Name != "Birthday" || clone.OwnerID != v || clone.ID == w.ID {
		t.Fatalf("unexpected clone: %+v", clone)
	}
	if len(clone.Items) != 1 || clone.Items[0].Title != "Bike" || *clone.Items[0].Priority != 1 || clone.Items[0].ID == bike.ID {
		t.Fatalf("unexpected clone items: %+v", clone.Items)
	}

	original, err := f.wishlists.Get(ctx, u, w.ID)
	if err != nil {
		t.Fatalf("Get original: %v", err)
	}
	if original.OwnerID != u || len(original.Items) != 1 || original.Items[0].ID != bike.ID || original.Items[0].Title != "Bike" {
		t.Fatalf("original changed by claim: %+v", original)
	}

	stored, err := f.wishlists.Get(ctx, v, clone.ID)
	if err != nil {
		t.Fatalf("Get clone: %v", err)
	}
	if stored.Items[0].Title != "Bike" {
		t.Fatalf("clone not persisted: %+v", stored)
	}

	if _, err := f.wishlists.UpdateItem(ctx, v, stored.Items[0].ID, domain.ItemChanges{Title: ptr("Scooter")}); err != nil {
		t.Fatalf("UpdateItem on clone: %v", err)
	}
	original, _ = f.wishlists.Get(ctx, u, w.ID)
	if original.Items[0].Title != "Bike" {
		t.Fatalf("mutating the clone leaked into the source")
	}
}

func TestClaim_NonClaimableReturnsNothing(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	v := f.signUp(t, "v@example.com")
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})
	item, _ := f.wishlists.AddItem(ctx, u, w.ID, ItemInput{Title: "Bike"})
	share, err := f.shares.CreateShare(ctx, u, w.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	clone, ok, err := f.shares.Claim(ctx, share.Token, v)
	if err != nil || ok || clone != nil {
		t.Fatalf("expected no result, got %v %v %v", clone, ok, err)
	}

	lists, _ := f.wishlists.List(ctx, v)
	if len(lists) != 0 {
		t.Fatalf("claimant received %d wishlists", len(lists))
	}
	original, _ := f.wishlists.Get(ctx, u, w.ID)
	if len(original.Items) != 1 || original.Items[0].ID != item.ID {
		t.Fatalf("source changed: %+v", original.Items)
	}
}

func TestClaim_IsRepeatable(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	v := f.signUp(t, "v@example.com")
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})
	share, _ := f.shares.CreateShare(ctx, u, w.ID, true, nil)

	first, ok1, err1 := f.shares.Claim(ctx, share.Token, v)
	second, ok2, err2 := f.shares.Claim(ctx, share.Token, v)
	if err1 != nil || err2 != nil || !ok1 || !ok2 {
		t.Fatalf("claims failed: %v %v", err1, err2)
	}
	if first.ID == second.ID {
		t.Fatalf("repeated claim returned the same clone")
	}
	lists, _ := f.wishlists.List(ctx, v)
	if len(lists) != 2 {
		t.Fatalf("expected 2 clones, got %d", len(lists))
	}
}

func TestExpiredShareBehavesLikeMissing(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	v := f.signUp(t, "v@example.com")
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})
	exp := time.Now().UTC().Add(time.Hour)
	share, err := f.shares.CreateShare(ctx, u, w.ID, true, &exp)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	if _, err := f.shares.GetPublicWishlist(ctx, share.Token); err != nil {
		t.Fatalf("active share should resolve: %v", err)
	}

	f.shares.now = func() time.Time { return exp.Add(time.Second) }

	_, expiredErr := f.shares.GetPublicWishlist(ctx, share.Token)
	_, missingErr := f.shares.GetPublicWishlist(ctx, "no-such-token")
	if !errors.Is(expiredErr, domain.ErrNotFound) || !errors.Is(missingErr, domain.ErrNotFound) {
		t.Fatalf("expected not found for both: %v / %v", expiredErr, missingErr)
	}
	if expiredErr.Error() != missingErr.Error() {
		t.Fatalf("expired and missing shares are distinguishable: %q vs %q", expiredErr, missingErr)
	}

	c1, ok1, err1 := f.shares.Claim(ctx, share.Token, v)
	c2, ok2, err2 := f.shares.Claim(ctx, "no-such-token", v)
	if c1 != nil || c2 != nil || ok1 || ok2 || err1 != nil || err2 != nil {
		t.Fatalf("claim results differ from missing share: %v %v %v / %v %v %v", c1, ok1, err1, c2, ok2, err2)
	}

	n, err := f.shares.PurgeExpired(ctx)
	if err != nil || n != 1 {
		t.Fatalf("PurgeExpired = %d, %v", n, err)
	}
}

func TestCreateShare_ReissueKeepsToken(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})

	first, err := f.shares.CreateShare(ctx, u, w.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	second, err := f.shares.CreateShare(ctx, u, w.ID, true, nil)
	if err != nil {
		t.Fatalf("CreateShare again: %v", err)
	}
	if first.Token != second.Token || !second.IsClaimable {
		t.Fatalf("reissue changed token or ignored claimable: %+v -> %+v", first, second)
	}

	pub, err := f.shares.GetPublicWishlist(ctx, first.Token)
	if err != nil || !pub.Share.IsClaimable {
		t.Fatalf("GetPublicWishlist: %+v, %v", pub, err)
	}
}

func TestCreateShare_DefaultTTL(t *testing.T) {
	f := newFixture(t)
	f.shares.defaultTTL = 48 * time.Hour
	u := f.signUp(t, "u@example.com")
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})

	share, err := f.shares.CreateShare(ctx, u, w.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if share.ExpiresAt == nil || share.ExpiresAt.Before(time.Now().Add(47*time.Hour)) {
		t.Fatalf("default ttl not applied: %v", share.ExpiresAt)
	}
}

func TestShareManagement_RequiresOwnership(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	v := f.signUp(t, "v@example.com")
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})

	if _, err := f.shares.CreateShare(ctx, v, w.ID, true, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
	share, _ := f.shares.CreateShare(ctx, u, w.ID, true, nil)
	if err := f.shares.RevokeShare(ctx, v, w.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for non-owner revoke, got %v", err)
	}
	if err := f.shares.RevokeShare(ctx, u, w.ID); err != nil {
		t.Fatalf("RevokeShare: %v", err)
	}
	if err := f.shares.RevokeShare(ctx, u, w.ID); err != nil {
		t.Fatalf("second RevokeShare: %v", err)
	}
	if _, err := f.shares.GetPublicWishlist(ctx, share.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("revoked share still resolves: %v", err)
	}
}

func TestGetPublicWishlist_OwnerName(t *testing.T) {
	f := newFixture(t)
	u := f.signUp(t, "u@example.com")
	if _, err := f.profiles.Update(ctx, u, domain.ProfileChanges{FirstName: ptr("Ada"), LastName: ptr("Lovelace")}); err != nil {
		t.Fatalf("profile update: %v", err)
	}
	w, _ := f.wishlists.Create(ctx, u, WishlistInput{Name: "Birthday"})
	share, _ := f.shares.CreateShare(ctx, u, w.ID, false, nil)

	pub, err := f.shares.GetPublicWishlist(ctx, share.Token)
	if err != nil {
		t.Fatalf("GetPublicWishlist: %v", err)
	}
	if pub.OwnerName != "Ada Lovelace" || pub.Wishlist.ID != w.ID {
		t.Fatalf("unexpected public wishlist: %+v", pub)
	}
}
