package dbhandler

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var EmbedMigrations embed.FS

const migrationsDir = "migrations"

// MigrateUp applies all pending migrations.
func MigrateUp(log *slog.Logger, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}

	log.Info("running postgres migrations (up)")
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("postgres migrations completed")
	return nil
}

// MigrateDown rolls back the last migration.
func MigrateDown(log *slog.Logger, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}

	log.Info("rolling back postgres migration (down)")
	if err := goose.Down(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	log.Info("postgres migration rollback completed")
	return nil
}

func MigrateStatus(log *slog.Logger, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}

	log.Info("postgres migration status")
	if err := goose.Status(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

func setupGoose() error {
	goose.SetBaseFS(EmbedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}
