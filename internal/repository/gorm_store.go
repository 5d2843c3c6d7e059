package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"gorm.io/gorm"
)

var errFinished = errors.New("unit of work already finished")

// GormStore opens units of work as database transactions.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormUnitOfWork{tx: tx}, nil
}

type gormUnitOfWork struct {
	tx       *gorm.DB
	finished bool
}

func (u *gormUnitOfWork) Users() UserRepository       { return &gormUsers{tx: u.tx} }
func (u *gormUnitOfWork) Profiles() ProfileRepository { return &gormProfiles{tx: u.tx} }
func (u *gormUnitOfWork) Items() ItemRepository       { return &gormItems{tx: u.tx} }
func (u *gormUnitOfWork) Shares() ShareRepository     { return &gormShares{tx: u.tx} }
func (u *gormUnitOfWork) Comments() CommentRepository { return &gormComments{tx: u.tx} }

func (u *gormUnitOfWork) Wishlists() WishlistRepository {
	return &gormWishlists{tx: u.tx, items: &gormItems{tx: u.tx}}
}

func (u *gormUnitOfWork) RefreshTokens() RefreshTokenRepository {
	return &gormRefreshTokens{tx: u.tx}
}

func (u *gormUnitOfWork) Commit() error {
	if u.finished {
		return errFinished
	}
	u.finished = true
	return u.tx.Commit().Error
}

func (u *gormUnitOfWork) Rollback() error {
	if u.finished {
		return nil
	}
	u.finished = true
	return u.tx.Rollback().Error
}

func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(what + " not found")
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func writeErr(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict(what + " already exists")
	}
	return fmt.Errorf("failed to save %s: %w", what, err)
}
