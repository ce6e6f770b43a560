package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/spf13/cobra"

	"github.com/DrGermanius/Reconciler/internal"
	"github.com/DrGermanius/Reconciler/internal/migrations"
)

func migrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig(configPath)
			if err != nil {
				return err
			}

			db, err := sql.Open("pgx", cfg.DatabaseURI)
			if err != nil {
				return err
			}
			defer db.Close()

			if err = db.Ping(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}

			if down {
				if err = migrations.Down(db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
				return nil
			}

			if err = migrations.Up(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration instead")

	return cmd
}
