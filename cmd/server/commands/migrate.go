package commands

import (
	"log/slog"

	"github.com/nextiwant/wishlist-backend/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			slog.Info("migrations applied")
			return nil
		},
	}
}
