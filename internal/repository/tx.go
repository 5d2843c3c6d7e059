package repository

import (
	"context"
	"fmt"
	"log/slog"
)

// WithinTx runs fn inside one unit of work. It commits when fn returns nil and
// rolls back on an error or a panic.
func WithinTx(ctx context.Context, store Store, fn func(uow UnitOfWork) error) (err error) {
	uow, err := store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback()
			panic(p)
		}
	}()

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			slog.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return nil
}
