/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"database/sql"
	"errors"
	"log/slog"
	"rewards/domain/config"
	"rewards/infrastructure/dbhandler"
	"rewards/infrastructure/logger"

	"github.com/spf13/cobra"
)

var ErrorMigrateStorage = errors.New("migrations need 'postgres' storage")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manages the postgres ledger schema",
}

func migrateRunner(migrate func(*slog.Logger, *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !config.IsPostgres() {
			return ErrorMigrateStorage
		}
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()
		return migrate(logger.New(config.IsVerbose()), db)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Applies all pending migrations",
		RunE:  migrateRunner(dbhandler.MigrateUp),
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rolls back the last migration",
		RunE:  migrateRunner(dbhandler.MigrateDown),
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Prints the migration status",
		RunE:  migrateRunner(dbhandler.MigrateStatus),
	})
}
