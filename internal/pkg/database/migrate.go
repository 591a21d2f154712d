package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"gopharma/internal/pkg/database/migrations"
)

// GooseDialect traduz o driver configurado para o dialeto do goose.
func GooseDialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}

// RunMigrations executa um comando do goose (up, down, status, ...) usando
// as migrações embutidas no binário.
func RunMigrations(db *sql.DB, driver, command string, args ...string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(GooseDialect(driver)); err != nil {
		return fmt.Errorf("goose: dialeto inválido: %w", err)
	}

	if err := goose.Run(command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
