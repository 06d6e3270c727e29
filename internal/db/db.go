// db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const schema = `
CREATE TABLE IF NOT EXISTS lyrics (
	isrc          TEXT PRIMARY KEY,
	title         TEXT NOT NULL DEFAULT '',
	artist        TEXT,
	body          TEXT NOT NULL,
	language      TEXT,
	pre_romanized INTEGER NOT NULL DEFAULT 0,
	lookups       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS users (
	chat_id   INTEGER PRIMARY KEY,
	username  TEXT,
	tg_name   TEXT,
	added_at  INTEGER NOT NULL,
	lookups   INTEGER NOT NULL DEFAULT 0
);`

// Open connects to a libSQL (Turso) database and verifies the connection.
func Open(ctx context.Context, databaseURL, authToken string) (*sql.DB, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, fmt.Errorf("database url required")
	}
	dsn := databaseURL
	if authToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", databaseURL, authToken)
	}

	database, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", databaseURL, err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return database, nil
}

// Migrate creates the catalog and user tables when missing.
func Migrate(ctx context.Context, database *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection safely
func Close(database *sql.DB) {
	if database != nil {
		if err := database.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
