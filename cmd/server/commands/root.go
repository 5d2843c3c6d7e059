package commands

import (
	"errors"
	"log/slog"

	"github.com/nextiwant/wishlist-backend/internal/config"
	"github.com/nextiwant/wishlist-backend/internal/database"
	"github.com/nextiwant/wishlist-backend/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

func Execute() error {
	root := &cobra.Command{
		Use:           "wishlist",
		Short:         "Wishlist sharing backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			logging.Setup(cfg.AppEnv, cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(serveCmd(), migrateCmd(), purgeSharesCmd())
	err := root.Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	return err
}

// openDB connects and brings the schema up to date.
func openDB() (*gorm.DB, error) {
	if cfg.DBPassword == "" {
		return nil, errors.New("DB_PASSWORD environment variable is required")
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
