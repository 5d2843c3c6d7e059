package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormUsers struct {
	tx *gorm.DB
}

func (r *gormUsers) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row models.User
	if err := r.tx.WithContext(ctx).First(&row, "id = ?", id.UUID).Error; err != nil {
		return nil, lookupErr(err, "user")
	}
	return fromUserRow(&row), nil
}

func (r *gormUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row models.User
	err := r.tx.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).First(&row).Error
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return fromUserRow(&row), nil
}

func (r *gormUsers) Add(ctx context.Context, user *domain.User) error {
	row := toUserRow(user)
	if err := r.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return writeErr(err, "user")
	}
	return nil
}

func (r *gormUsers) Update(ctx context.Context, user *domain.User) error {
	row := toUserRow(user)
	if err := r.tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return writeErr(err, "user")
	}
	return nil
}

func (r *gormUsers) Delete(ctx context.Context, id domain.UserID) error {
	return r.tx.WithContext(ctx).Delete(&models.User{}, "id = ?", id.UUID).Error
}

type gormProfiles struct {
	tx *gorm.DB
}

func (r *gormProfiles) Get(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	var row models.UserProfile
	if err := r.tx.WithContext(ctx).First(&row, "user_id = ?", userID.UUID).Error; err != nil {
		return nil, lookupErr(err, "profile")
	}
	return fromProfileRow(&row), nil
}

func (r *gormProfiles) ListByUserIDs(ctx context.Context, ids []domain.UserID) (map[domain.UserID]*domain.UserProfile, error) {
	out := make(map[domain.UserID]*domain.UserProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.UserProfile
	if err := r.tx.WithContext(ctx).Where("user_id IN ?", userUUIDs(ids)).Find(&rows).Error; err != nil {
		return nil, lookupErr(err, "profiles")
	}
	for i := range rows {
		p := fromProfileRow(&rows[i])
		out[p.UserID] = p
	}
	return out, nil
}

func (r *gormProfiles) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	row := toProfileRow(profile)
	if err := r.tx.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return writeErr(err, "profile")
	}
	return nil
}

func (r *gormProfiles) Delete(ctx context.Context, userID domain.UserID) error {
	return r.tx.WithContext(ctx).Delete(&models.UserProfile{}, "user_id = ?", userID.UUID).Error
}

type gormRefreshTokens struct {
	tx *gorm.DB
}

func (r *gormRefreshTokens) Add(ctx context.Context, token *RefreshToken) error {
	row := models.RefreshToken{
		ID:        token.ID,
		UserID:    token.UserID.UUID,
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
		Revoked:   token.Revoked,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
		token.ID = row.ID
	}
	if err := r.tx.WithContext(ctx).Create(&row).Error; err != nil {
		return writeErr(err, "refresh token")
	}
	return nil
}

func (r *gormRefreshTokens) GetByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	var row models.RefreshToken
	if err := r.tx.WithContext(ctx).Where("token_hash = ?", hash).First(&row).Error; err != nil {
		return nil, lookupErr(err, "refresh token")
	}
	return &RefreshToken{
		ID:        row.ID,
		UserID:    domain.UserID{UUID: row.UserID},
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt,
		Revoked:   row.Revoked,
	}, nil
}

func (r *gormRefreshTokens) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.tx.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

func (r *gormRefreshTokens) RevokeAllForUser(ctx context.Context, userID domain.UserID) error {
	return r.tx.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID.UUID, false).
		Update("revoked", true).Error
}
