// Package postgres implements the credential store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/haguru/torii/internal/apperrors"
	"github.com/haguru/torii/internal/interfaces"
)

const (
	usersTable = "users"

	// uniqueViolation is the PostgreSQL error code for a unique index hit.
	uniqueViolation = "23505"

	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second
)

// Store is the PostgreSQL-backed credential store.
type Store struct {
	db *sql.DB
}

// NewStore connects to PostgreSQL with the given DSN and pool settings.
// Zero pool values fall back to the package defaults.
func NewStore(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) (interfaces.CredentialStore, error) {
	if maxOpenConns <= 0 {
		maxOpenConns = DefaultMaxOpenConns
	}
	if maxIdleConns <= 0 {
		maxIdleConns = DefaultMaxIdleConns
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = DefaultConnMaxLifetime
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns all credential records.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password_hash FROM `+usersTable)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query users: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	users := make(map[string]string)
	for rows.Next() {
		var username, hash string
		if err := rows.Scan(&username, &hash); err != nil {
			return nil, fmt.Errorf("%w: failed to scan user row: %v", apperrors.ErrStorage, err)
		}
		users[username] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate user rows: %v", apperrors.ErrStorage, err)
	}

	return users, nil
}

// Save inserts a new credential record with a generated row id. A unique
// violation on the username index maps to a conflict.
func (s *Store) Save(ctx context.Context, username, hash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+usersTable+` (id, username, password_hash) VALUES ($1, $2, $3)`,
		uuid.New().String(), username, hash)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, username)
		}
		return fmt.Errorf("%w: failed to insert user: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// EnsureIndices creates the users table and the unique username index.
func (s *Store) EnsureIndices(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+usersTable+` (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON `+usersTable+` (username)`)
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	return nil
}

// Close closes the PostgreSQL connection pool.
func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}
