package main

import (
	"fmt"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/store"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := config.LoadDB()
			if err != nil {
				return err
			}
			if dbCfg.Type != config.DBPostgres && dbCfg.Type != config.DBSQLite {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "DB_TYPE=%s has no migrations to apply\n", dbCfg.Type)
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			// Opening a SQL store migrates it to the latest version.
			db, err := store.New(cmd.Context(), *dbCfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s database is up to date\n", dbCfg.Type)
			return err
		},
	}
}
