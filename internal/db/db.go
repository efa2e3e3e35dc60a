// Package db sets up the gorm database connection used by the registry.
package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// defaultSQLiteFile is the database file created in the current directory
// when no DSN is supplied.
const defaultSQLiteFile = "mcpforge.db"

// NewDBConnection creates a new database connection based on the DSN.
// An empty DSN falls back to a local SQLite file. A postgres:// DSN uses
// the Postgres driver; anything else is treated as a SQLite file path.
func NewDBConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		log.Printf("[db] no DSN supplied, using local SQLite database %s", defaultSQLiteFile)
		return newSQLiteConn(defaultSQLiteFile)
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return newPostgresConn(dsn)
	}
	return newSQLiteConn(dsn)
}

func newPostgresConn(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	return conn, nil
}

func newSQLiteConn(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return conn, nil
}
