// Package db provides PostgreSQL persistence for scored applicants.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

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

// Ping checks connectivity and returns the database server time
func (db *DB) Ping(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := db.pool.QueryRow(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("failed to ping database: %w", err)
	}
	return now, nil
}

// Migrate applies the embedded schema. It is safe to run repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Schema returns the embedded DDL applied by Migrate
func Schema() string {
	return schemaSQL
}
