package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormWishlists struct {
	tx    *gorm.DB
	items *gormItems
}

func (r *gormWishlists) GetByID(ctx context.Context, id domain.WishlistID) (*domain.Wishlist, error) {
	var row models.Wishlist
	if err := r.tx.WithContext(ctx).First(&row, "id = ?", id.UUID).Error; err != nil {
		return nil, lookupErr(err, "wishlist")
	}
	lists, err := r.hydrate(ctx, []models.Wishlist{row})
	if err != nil {
		return nil, err
	}
	return lists[0], nil
}

func (r *gormWishlists) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Wishlist, error) {
	var rows []models.Wishlist
	err := r.tx.WithContext(ctx).
		Where("owner_id = ?", owner.UUID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, lookupErr(err, "wishlists")
	}
	return r.hydrate(ctx, rows)
}

func (r *gormWishlists) ListPublicByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Wishlist, error) {
	var rows []models.Wishlist
	err := r.tx.WithContext(ctx).
		Where("owner_id = ? AND visibility = ?", owner.UUID, string(domain.VisibilityPublic)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, lookupErr(err, "wishlists")
	}
	return r.hydrate(ctx, rows)
}

// hydrate loads the items of every row in one query.
func (r *gormWishlists) hydrate(ctx context.Context, rows []models.Wishlist) ([]*domain.Wishlist, error) {
	out := make([]*domain.Wishlist, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	byID := make(map[uuid.UUID]*domain.Wishlist, len(rows))
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		w := fromWishlistRow(&rows[i])
		out[i] = w
		byID[rows[i].ID] = w
		ids[i] = rows[i].ID
	}

	var items []models.WishlistItem
	err := r.tx.WithContext(ctx).
		Where("wishlist_id IN ?", ids).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, lookupErr(err, "wishlist items")
	}
	for i := range items {
		if w, ok := byID[items[i].WishlistID]; ok {
			w.Items = append(w.Items, fromItemRow(&items[i]))
		}
	}
	return out, nil
}

func (r *gormWishlists) Add(ctx context.Context, wishlist *domain.Wishlist) error {
	row := toWishlistRow(wishlist)
	if err := r.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return writeErr(err, "wishlist")
	}
	for i, item := range wishlist.Items {
		item.WishlistID = wishlist.ID
		if err := r.items.Upsert(ctx, item, i); err != nil {
			return err
		}
	}
	wishlist.MarkPersisted()
	return nil
}

// Update saves the root row and only the item rows changed through the
// aggregate since it was loaded. Rows written by other requests in the
// meantime are left alone.
func (r *gormWishlists) Update(ctx context.Context, wishlist *domain.Wishlist) error {
	row := toWishlistRow(wishlist)
	if err := r.tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return writeErr(err, "wishlist")
	}

	writes := wishlist.PendingItemWrites()
	if err := r.items.deleteMany(ctx, itemUUIDs(writes.Removed)); err != nil {
		return err
	}
	for _, item := range writes.Updated {
		if err := r.items.update(ctx, item); err != nil {
			return err
		}
	}
	if len(writes.Added) > 0 {
		next, err := r.items.nextPosition(ctx, wishlist.ID)
		if err != nil {
			return err
		}
		for i, item := range writes.Added {
			item.WishlistID = wishlist.ID
			if err := r.items.Upsert(ctx, item, next+i); err != nil {
				return err
			}
		}
	}
	wishlist.MarkPersisted()
	return nil
}

func (r *gormWishlists) Delete(ctx context.Context, id domain.WishlistID) error {
	db := r.tx.WithContext(ctx)
	var itemIDs []uuid.UUID
	if err := db.Model(&models.WishlistItem{}).Where("wishlist_id = ?", id.UUID).Pluck("id", &itemIDs).Error; err != nil {
		return lookupErr(err, "wishlist items")
	}
	if err := r.items.deleteMany(ctx, itemIDs); err != nil {
		return err
	}
	if err := db.Delete(&models.PublicWishlistShare{}, "wishlist_id = ?", id.UUID).Error; err != nil {
		return err
	}
	return db.Delete(&models.Wishlist{}, "id = ?", id.UUID).Error
}

type gormItems struct {
	tx *gorm.DB
}

func (r *gormItems) GetByID(ctx context.Context, id domain.ItemID) (*domain.WishlistItem, error) {
	var row models.WishlistItem
	if err := r.tx.WithContext(ctx).First(&row, "id = ?", id.UUID).Error; err != nil {
		return nil, lookupErr(err, "item")
	}
	return fromItemRow(&row), nil
}

func (r *gormItems) ListByWishlist(ctx context.Context, wishlistID domain.WishlistID) ([]*domain.WishlistItem, error) {
	var rows []models.WishlistItem
	err := r.tx.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID.UUID).
		Order("position ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, lookupErr(err, "items")
	}
	out := make([]*domain.WishlistItem, len(rows))
	for i := range rows {
		out[i] = fromItemRow(&rows[i])
	}
	return out, nil
}

func (r *gormItems) Upsert(ctx context.Context, item *domain.WishlistItem, position int) error {
	row := toItemRow(item, position)
	if err := r.tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return writeErr(err, "item")
	}
	return nil
}

// update writes the item's own columns. Position and creation time stay as
// stored.
func (r *gormItems) update(ctx context.Context, item *domain.WishlistItem) error {
	row := toItemRow(item, 0)
	result := r.tx.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("id = ?", row.ID).
		Select("title", "description", "link", "priority", "is_received", "received_note", "updated_at").
		Updates(&row)
	if result.Error != nil {
		return writeErr(result.Error, "item")
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("item not found")
	}
	return nil
}

// nextPosition is one past the highest stored position in the wishlist.
func (r *gormItems) nextPosition(ctx context.Context, id domain.WishlistID) (int, error) {
	var next int
	err := r.tx.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("wishlist_id = ?", id.UUID).
		Select("COALESCE(MAX(position), -1) + 1").
		Row().
		Scan(&next)
	if err != nil {
		return 0, lookupErr(err, "item position")
	}
	return next, nil
}

func (r *gormItems) Delete(ctx context.Context, id domain.ItemID) error {
	return r.deleteMany(ctx, []uuid.UUID{id.UUID})
}

// deleteMany removes items together with every comment on them.
func (r *gormItems) deleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.tx.WithContext(ctx)
	if err := db.Delete(&models.WishlistItemComment{}, "item_id IN ?", ids).Error; err != nil {
		return err
	}
	return db.Delete(&models.WishlistItem{}, "id IN ?", ids).Error
}
