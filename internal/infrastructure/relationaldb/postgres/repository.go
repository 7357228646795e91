// Package postgres provides a Postgres implementation of the RelationalDB interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/Sid-0307/Kudumbam/internal/infrastructure/config"
	"github.com/Sid-0307/Kudumbam/internal/infrastructure/relationaldb/sqlstore"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Repository implements ports.RelationalDB using Postgres.
type Repository struct {
	*sqlstore.Store
}

// NewRepository connects to the database named by cfg.DSN.
func NewRepository(cfg config.DatabaseConfig) (*Repository, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	return &Repository{
		Store: sqlstore.New(db, sqlstore.Dialect{
			Name:              "postgres",
			NumberedParams:    true,
			IsUniqueViolation: isUniqueViolation,
		}),
	}, nil
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS families (
			id TEXT PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS persons (
			id TEXT PRIMARY KEY,
			family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			alias TEXT NOT NULL DEFAULT '',
			age INTEGER,
			gender TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_family ON persons(family_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS relationships (
			id TEXT PRIMARY KEY,
			family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
			person_a TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
			person_b TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
			relation_type TEXT NOT NULL CHECK (relation_type IN ('parent', 'spouse')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_relationships_unique
			ON relationships(family_id, person_a, person_b, relation_type)`,
		`CREATE INDEX IF NOT EXISTS idx_relationships_family ON relationships(family_id)`,
		`CREATE TABLE IF NOT EXISTS node_positions (
			family_id TEXT NOT NULL REFERENCES families(id) ON DELETE CASCADE,
			person_id TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
			x DOUBLE PRECISION NOT NULL,
			y DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (family_id, person_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
