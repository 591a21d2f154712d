package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// NewSQLiteDB abre um banco SQLite local (desenvolvimento e testes).
// O driver é Go puro, sem CGO.
func NewSQLiteDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir o banco SQLite: %w", err)
	}

	// SQLite serializa escritas; uma única conexão evita SQLITE_BUSY
	// quando os workers do relatório consultam em paralelo.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no SQLite: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("⚠️ Aviso: falha ao aplicar %q: %v", pragma, err)
		}
	}

	return db, nil
}

// Open escolhe o driver configurado em DATABASE_DRIVER.
func Open(driver, dataSourceName string) (*sql.DB, error) {
	switch driver {
	case "", "postgres":
		return NewPostgresDB(dataSourceName)
	case "sqlite":
		return NewSQLiteDB(dataSourceName)
	default:
		return nil, fmt.Errorf("driver de banco de dados desconhecido: %q", driver)
	}
}
