// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"modernc.org/sqlite" // Pure Go SQLite driver
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Sid-0307/Kudumbam/internal/infrastructure/config"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/relationaldb/sqlstore"
)

const memoryPath = ":memory:"

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	*sqlstore.Store
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.DatabaseConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", dataSourceName(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if cfg.Path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}

	return &Repository{
		Store: sqlstore.New(db, sqlstore.Dialect{
			Name:              "sqlite",
			IsUniqueViolation: isUniqueViolation,
		}),
		path: cfg.Path,
	}, nil
}

// connectionPragmas are run by the driver on every new pooled connection;
// SQLite keeps PRAGMA state per connection.
var connectionPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)", // avoid "database is locked" under concurrent writers
	"journal_mode(WAL)",
}

func dataSourceName(path string) string {
	q := url.Values{}
	for _, p := range connectionPragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		alias TEXT NOT NULL DEFAULT '',
		age INTEGER,
		gender TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_persons_family ON persons(family_id, created_at);

	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		person_a TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		person_b TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		relation_type TEXT NOT NULL CHECK (relation_type IN ('parent', 'spouse')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_relationships_unique
		ON relationships(family_id, person_a, person_b, relation_type);
	CREATE INDEX IF NOT EXISTS idx_relationships_family ON relationships(family_id);

	CREATE TABLE IF NOT EXISTS node_positions (
		family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
		person_id TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		x REAL NOT NULL,
		y REAL NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (family_id, person_id)
	);
	`

	_, err := r.DB().ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
