package repository

import (
	"context"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormShares struct {
	tx *gorm.DB
}

func (r *gormShares) GetByWishlist(ctx context.Context, wishlistID domain.WishlistID) (*domain.PublicWishlistShare, error) {
	var row models.PublicWishlistShare
	if err := r.tx.WithContext(ctx).First(&row, "wishlist_id = ?", wishlistID.UUID).Error; err != nil {
		return nil, lookupErr(err, "share")
	}
	return fromShareRow(&row), nil
}

func (r *gormShares) GetByToken(ctx context.Context, token domain.ShareToken) (*domain.PublicWishlistShare, error) {
	var row models.PublicWishlistShare
	if err := r.tx.WithContext(ctx).Where("token = ?", string(token)).First(&row).Error; err != nil {
		return nil, lookupErr(err, "share")
	}
	return fromShareRow(&row), nil
}

func (r *gormShares) Upsert(ctx context.Context, share *domain.PublicWishlistShare) error {
	row := toShareRow(share)
	if err := r.tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return writeErr(err, "share")
	}
	return nil
}

func (r *gormShares) Delete(ctx context.Context, wishlistID domain.WishlistID) error {
	return r.tx.WithContext(ctx).Delete(&models.PublicWishlistShare{}, "wishlist_id = ?", wishlistID.UUID).Error
}

func (r *gormShares) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.tx.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", now.UTC()).
		Delete(&models.PublicWishlistShare{})
	return result.RowsAffected, result.Error
}

type gormComments struct {
	tx *gorm.DB
}

func (r *gormComments) GetByID(ctx context.Context, id domain.CommentID) (*domain.WishlistItemComment, error) {
	var row models.WishlistItemComment
	if err := r.tx.WithContext(ctx).First(&row, "id = ?", id.UUID).Error; err != nil {
		return nil, lookupErr(err, "comment")
	}
	return fromCommentRow(&row), nil
}

func (r *gormComments) ListByItemIDs(ctx context.Context, itemIDs []domain.ItemID) ([]*domain.WishlistItemComment, error) {
	if len(itemIDs) == 0 {
		return []*domain.WishlistItemComment{}, nil
	}
	var rows []models.WishlistItemComment
	err := r.tx.WithContext(ctx).
		Where("item_id IN ?", itemUUIDs(itemIDs)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, lookupErr(err, "comments")
	}
	out := make([]*domain.WishlistItemComment, len(rows))
	for i := range rows {
		out[i] = fromCommentRow(&rows[i])
	}
	return out, nil
}

func (r *gormComments) Add(ctx context.Context, comment *domain.WishlistItemComment) error {
	row := toCommentRow(comment)
	if err := r.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return writeErr(err, "comment")
	}
	return nil
}

func (r *gormComments) DeleteByItemIDs(ctx context.Context, itemIDs []domain.ItemID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.tx.WithContext(ctx).Delete(&models.WishlistItemComment{}, "item_id IN ?", itemUUIDs(itemIDs)).Error
}
