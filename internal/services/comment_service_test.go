package services

import (
	"errors"
	"testing"

	"github.com/nextiwant/wishlist-backend/internal/domain"
)

func setupSharedItem(t *testing.T, f *fixture) (owner domain.UserID, w *domain.Wishlist, item *domain.WishlistItem, token domain.ShareToken) {
	t.Helper()
	owner = f.signUp(t, "owner@example.com")
	w, err := f.wishlists.Create(ctx, owner, WishlistInput{Name: "Birthday"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	item, err = f.wishlists.AddItem(ctx, owner, w.ID, ItemInput{Title: "Bike"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	share, err := f.shares.CreateShare(ctx, owner, w.ID, false, nil)
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	return owner, w, item, share.Token
}

func TestReplyToReplyIsRejected(t *testing.T) {
	f := newFixture(t)
	_, _, item, token := setupSharedItem(t, f)
	guest := f.signUp(t, "guest@example.com")

	root, err := f.comments.AddComment(ctx, guest, item.ID, "Which colour?")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	reply, err := f.comments.AddReply(ctx, guest, root.Comment.ID, "Red!")
	if err != nil {
		t.Fatalf("AddReply: %v", err)
	}
	if reply.Comment.ItemID != item.ID || reply.Comment.ParentID == nil || *reply.Comment.ParentID != root.Comment.ID {
		t.Fatalf("reply not attached: %+v", reply.Comment)
	}

	if _, err := f.comments.AddReply(ctx, guest, reply.Comment.ID, "too deep"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	views, err := f.comments.ListPublicComments(ctx, token)
	if err != nil {
		t.Fatalf("ListPublicComments: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("rejected reply was persisted: %d comments", len(views))
	}
	if views[0].Comment.ID != root.Comment.ID || views[1].Comment.ID != reply.Comment.ID {
		t.Fatalf("comments out of order")
	}
}

func TestComments_RequireActiveShare(t *testing.T) {
	f := newFixture(t)
	owner, w, item, _ := setupSharedItem(t, f)
	guest := f.signUp(t, "guest@example.com")

	root, err := f.comments.AddComment(ctx, guest, item.ID, "nice")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if err := f.shares.RevokeShare(ctx, owner, w.ID); err != nil {
		t.Fatalf("RevokeShare: %v", err)
	}

	if _, err := f.comments.AddComment(ctx, guest, item.ID, "still there?"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found without share, got %v", err)
	}
	if _, err := f.comments.AddReply(ctx, guest, root.Comment.ID, "hello?"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for reply without share, got %v", err)
	}
	if _, err := f.comments.AddComment(ctx, guest, domain.NewItemID(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown item, got %v", err)
	}
	if _, err := f.comments.AddReply(ctx, guest, domain.NewCommentID(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown parent, got %v", err)
	}
}

func TestComments_ContentValidation(t *testing.T) {
	f := newFixture(t)
	_, _, item, _ := setupSharedItem(t, f)
	guest := f.signUp(t, "guest@example.com")

	for _, content := range []string{"   ", "call me at 555-123-4567", "write to me@example.com", "what a scam"} {
		if _, err := f.comments.AddComment(ctx, guest, item.ID, content); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("content %q: expected validation error, got %v", content, err)
		}
	}
	if _, err := f.comments.AddComment(ctx, guest, item.ID, "Found it cheaper at https://shop.example.com/bike"); err != nil {
		t.Fatalf("links should be allowed: %v", err)
	}
}

func TestListPublicComments_AuthorNames(t *testing.T) {
	f := newFixture(t)
	_, _, item, token := setupSharedItem(t, f)
	guest := f.signUp(t, "guest@example.com")
	if _, err := f.profiles.Update(ctx, guest, domain.ProfileChanges{Username: ptr("gus")}); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if _, err := f.comments.AddComment(ctx, guest, item.ID, "love it"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	views, err := f.comments.ListPublicComments(ctx, token)
	if err != nil {
		t.Fatalf("ListPublicComments: %v", err)
	}
	if len(views) != 1 || views[0].AuthorName != "gus" {
		t.Fatalf("unexpected views: %+v", views)
	}
	if _, err := f.comments.ListPublicComments(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown token, got %v", err)
	}
}
