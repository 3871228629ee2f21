package main

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/pkg/database"
	"context"
	"time"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg := config.Cfg.DB
			db, err := database.NewGormDB(&dbCfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err = database.Migrate(ctx, db); err != nil {
				return err
			}
			cmd.Println("Migration completed")
			return nil
		},
	}
}
