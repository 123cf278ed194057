package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alumnet/alumni-network/internal/infrastructure/db/sqlstore"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the relational schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			db, err := sqlstore.Open(sqlStoreConfig(cfg), log)
			if err != nil {
				return err
			}
			defer sqlstore.Close(db)

			if err := sqlstore.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Str("driver", cfg.DB.Driver).Msg("schema is up to date")
			return nil
		},
	}
}
