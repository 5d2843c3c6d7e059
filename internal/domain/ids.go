// Package domain holds the wishlist aggregate and the entities around it.
// Nothing in here touches storage or the network; services load state through
// the repository port, mutate it here and persist it again.
package domain

import "github.com/google/uuid"

type UserID struct{ uuid.UUID }

type WishlistID struct{ uuid.UUID }

type ItemID struct{ uuid.UUID }

type CommentID struct{ uuid.UUID }

// ShareToken is the opaque string handed out with a public share.
type ShareToken string

func NewUserID() UserID         { return UserID{uuid.New()} }
func NewWishlistID() WishlistID { return WishlistID{uuid.New()} }
func NewItemID() ItemID         { return ItemID{uuid.New()} }
func NewCommentID() CommentID   { return CommentID{uuid.New()} }

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, Validation("invalid user id")
	}
	return UserID{id}, nil
}

func ParseWishlistID(s string) (WishlistID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return WishlistID{}, Validation("invalid wishlist id")
	}
	return WishlistID{id}, nil
}

func ParseItemID(s string) (ItemID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ItemID{}, Validation("invalid item id")
	}
	return ItemID{id}, nil
}

func ParseCommentID(s string) (CommentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CommentID{}, Validation("invalid comment id")
	}
	return CommentID{id}, nil
}
