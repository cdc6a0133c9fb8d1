// Package catalog provides read access to the canonical game catalog and
// owns its sqlite schema.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	_ "modernc.org/sqlite"
)

// DB wraps the catalog's sqlite connection.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the catalog database at the given path. The
// connection is instrumented with OpenTelemetry.
func Open(ctx context.Context, path string) (*DB, error) {
	conn, err := otelsql.Open("sqlite", path,
		otelsql.WithAttributes(semconv.DBSystemSqlite),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate runs schema migrations up to the current version.
func (db *DB) migrate(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version < 1 {
		if err := db.migrateV1(ctx); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := db.migrateV2(ctx); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the games and listings tables.
func (db *DB) migrateV1(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			match_key TEXT NOT NULL,
			system_id TEXT NOT NULL,
			approval_status TEXT NOT NULL DEFAULT 'pending',
			nsfw INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_games_match_key ON games(match_key);
		CREATE INDEX IF NOT EXISTS idx_games_system_id ON games(system_id);

		CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY,
			game_id INTEGER NOT NULL,
			emulator TEXT NOT NULL,
			url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(game_id) REFERENCES games(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_listings_game_id ON listings(game_id);
		CREATE INDEX IF NOT EXISTS idx_listings_emulator ON listings(emulator);

		INSERT INTO schema_version (version) VALUES (1);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v1 migration: %w", err)
	}

	return nil
}

// migrateV2 adds the enrichment metadata table.
func (db *DB) migrateV2(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS game_metadata (
			game_id INTEGER PRIMARY KEY,
			provider_id TEXT NOT NULL,
			description TEXT,
			release_date TEXT,
			developer TEXT,
			publisher TEXT,
			rating REAL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(game_id) REFERENCES games(id) ON DELETE CASCADE
		);

		INSERT INTO schema_version (version) VALUES (2);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v2 migration: %w", err)
	}

	return nil
}
