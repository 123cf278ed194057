package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alumnet/alumni-network/internal/core/ports"
	"github.com/alumnet/alumni-network/internal/core/service"
	"github.com/alumnet/alumni-network/internal/infrastructure/db/sqlstore"
)

func createAdminCommand() *cobra.Command {
	var in ports.RegisterInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an active administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Username == "" || in.Email == "" || in.Password == "" {
				return errors.New("--username, --email and --password are required")
			}

			cfg, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			db, err := sqlstore.Open(sqlStoreConfig(cfg), log)
			if err != nil {
				return err
			}
			defer sqlstore.Close(db)

			if cfg.DB.AutoMigrate {
				if err := sqlstore.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			auth := service.NewAuthService(sqlstore.NewUserRepository(db), nil, cfg.JWTSecret, cfg.JWTTTL, log)
			user, err := auth.CreateAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "admin username")
	cmd.Flags().StringVar(&in.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password (min 8 characters)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	return cmd
}
