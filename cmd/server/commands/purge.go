package commands

import (
	"fmt"

	"github.com/nextiwant/wishlist-backend/internal/database"
	"github.com/nextiwant/wishlist-backend/internal/repository"
	"github.com/nextiwant/wishlist-backend/internal/services"
	"github.com/spf13/cobra"
)

func purgeSharesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-shares",
		Short: "Delete share links whose expiry has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			shares := services.NewShareService(repository.NewGormStore(db), cfg.ShareDefaultTTL)
			n, err := shares.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired share(s).\n", n)
			return nil
		},
	}
}
