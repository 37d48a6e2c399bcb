// Package db provides PostgreSQL storage for parsed resumes.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS resumes (
	id                     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	filename               TEXT NOT NULL DEFAULT '',
	content_hash           TEXT NOT NULL DEFAULT '',
	full_name              TEXT NOT NULL DEFAULT '',
	email                  TEXT NOT NULL DEFAULT '',
	total_experience_years NUMERIC(6, 2) NOT NULL DEFAULT 0,
	total_experience       TEXT NOT NULL DEFAULT 'N/A',
	data                   JSONB NOT NULL,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_resumes_content_hash ON resumes (content_hash);
CREATE INDEX IF NOT EXISTS idx_resumes_created_at ON resumes (created_at DESC);
`

// EnsureSchema creates the resumes table and its indexes if they are missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
