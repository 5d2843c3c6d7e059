// Package testutil opens throwaway databases and seeds fixtures for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nextiwant/wishlist-backend/internal/database"
	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB returns a migrated SQLite database that lives in the test's temp dir.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql.DB: %v", err)
	}
	// One connection keeps SQLite from reporting "database is locked"
	// while a unit of work holds the write lock.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// Store wraps DB in the repository port.
func Store(tb testing.TB) (*gorm.DB, repository.Store) {
	tb.Helper()
	db := DB(tb)
	return db, repository.NewGormStore(db)
}

// Tx runs fn in its own committed unit of work and fails the test on error.
func Tx(tb testing.TB, store repository.Store, fn func(uow repository.UnitOfWork) error) {
	tb.Helper()
	if err := repository.WithinTx(context.Background(), store, fn); err != nil {
		tb.Fatalf("unit of work: %v", err)
	}
}

func SeedUser(tb testing.TB, store repository.Store, email string) *domain.User {
	tb.Helper()
	user, err := domain.NewUser(email, "not-a-real-hash")
	if err != nil {
		tb.Fatalf("NewUser: %v", err)
	}
	Tx(tb, store, func(uow repository.UnitOfWork) error {
		if err := uow.Users().Add(context.Background(), user); err != nil {
			return err
		}
		return uow.Profiles().Upsert(context.Background(), domain.NewUserProfile(user.ID))
	})
	return user
}

// SeedWishlist stores a wishlist with one item per title, in order.
func SeedWishlist(tb testing.TB, store repository.Store, owner domain.UserID, name string, titles ...string) *domain.Wishlist {
	tb.Helper()
	w, err := domain.NewWishlist(owner, name, nil, domain.VisibilityPrivate)
	if err != nil {
		tb.Fatalf("NewWishlist: %v", err)
	}
	for _, title := range titles {
		item, err := domain.NewWishlistItem(title, nil, nil, nil)
		if err != nil {
			tb.Fatalf("NewWishlistItem: %v", err)
		}
		if err := w.AddItem(item); err != nil {
			tb.Fatalf("AddItem: %v", err)
		}
	}
	Tx(tb, store, func(uow repository.UnitOfWork) error {
		return uow.Wishlists().Add(context.Background(), w)
	})
	return w
}
