package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
)

type CommentView struct {
	Comment    *domain.WishlistItemComment
	AuthorName string
}

// CommentService runs the comment threads on publicly shared items.
type CommentService struct {
	store  repository.Store
	filter ContentFilter
	now    func() time.Time
}

func NewCommentService(store repository.Store, filter ContentFilter) *CommentService {
	return &CommentService{store: store, filter: filter, now: utcNow}
}

func (s *CommentService) AddComment(ctx context.Context, userID domain.UserID, itemID domain.ItemID, content string) (*CommentView, error) {
	comment, err := domain.NewComment(itemID, userID, content)
	if err != nil {
		return nil, err
	}
	if err := s.filter.Check(comment.Content); err != nil {
		return nil, err
	}

	var view *CommentView
	err = repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		if err := s.requireSharedItem(ctx, uow, itemID); err != nil {
			return err
		}
		if err := uow.Comments().Add(ctx, comment); err != nil {
			return err
		}
		name, err := displayName(ctx, uow, userID)
		if err != nil {
			return err
		}
		view = &CommentView{Comment: comment, AuthorName: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("comment added", "user_id", userID.String(), "action", "comment", "item_id", itemID.String())
	return view, nil
}

// AddReply answers a root comment. Replies to replies are a conflict.
func (s *CommentService) AddReply(ctx context.Context, userID domain.UserID, parentID domain.CommentID, content string) (*CommentView, error) {
	var view *CommentView
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		parent, err := uow.Comments().GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		if err := s.requireSharedItem(ctx, uow, parent.ItemID); err != nil {
			return err
		}
		reply, err := domain.NewReply(parent, userID, content)
		if err != nil {
			return err
		}
		if err := s.filter.Check(reply.Content); err != nil {
			return err
		}
		if err := uow.Comments().Add(ctx, reply); err != nil {
			return err
		}
		name, err := displayName(ctx, uow, userID)
		if err != nil {
			return err
		}
		view = &CommentView{Comment: reply, AuthorName: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListPublicComments returns every comment on the items of a shared wishlist,
// oldest first.
func (s *CommentService) ListPublicComments(ctx context.Context, token domain.ShareToken) ([]CommentView, error) {
	var views []CommentView
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		if token == "" {
			return ErrShareNotFound
		}
		share, err := uow.Shares().GetByToken(ctx, token)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrShareNotFound
		}
		if err != nil {
			return err
		}
		if !share.IsActive(s.now()) {
			return ErrShareNotFound
		}
		items, err := uow.Items().ListByWishlist(ctx, share.WishlistID)
		if err != nil {
			return err
		}
		ids := make([]domain.ItemID, len(items))
		for i, item := range items {
			ids[i] = item.ID
		}

		comments, err := uow.Comments().ListByItemIDs(ctx, ids)
		if err != nil {
			return err
		}
		authors := make([]domain.UserID, 0, len(comments))
		for _, c := range comments {
			authors = append(authors, c.UserID)
		}
		profiles, err := uow.Profiles().ListByUserIDs(ctx, authors)
		if err != nil {
			return err
		}

		views = make([]CommentView, len(comments))
		for i, c := range comments {
			views[i] = CommentView{Comment: c}
			if p, ok := profiles[c.UserID]; ok {
				views[i].AuthorName = p.Name()
			}
		}
		return nil
	})
	return views, err
}

// requireSharedItem checks that the item exists and that its wishlist is
// currently shared.
func (s *CommentService) requireSharedItem(ctx context.Context, uow repository.UnitOfWork, itemID domain.ItemID) error {
	item, err := uow.Items().GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := uow.Wishlists().GetByID(ctx, item.WishlistID); err != nil {
		return err
	}
	share, err := uow.Shares().GetByWishlist(ctx, item.WishlistID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrShareNotFound
	}
	if err != nil {
		return err
	}
	if !share.IsActive(s.now()) {
		return ErrShareNotFound
	}
	return nil
}
