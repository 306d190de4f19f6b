// Package sqlite implements the credential store on an embedded SQLite
// database with a unique index on username.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql

	"github.com/haguru/torii/internal/apperrors"
	"github.com/haguru/torii/internal/interfaces"
)

const usersTable = "users"

// Store is the SQLite-backed credential store.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database file at path.
func NewStore(path string) (interfaces.CredentialStore, error) {
	if path == "" {
		path = "torii.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// Pragmas for robustness. journal_mode may not be supported in some
	// contexts (e.g., in-memory), so its error is ignored.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
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

// Save inserts a new credential record. The unique index turns racing
// duplicate registrations into a conflict instead of a second row.
func (s *Store) Save(ctx context.Context, username, hash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+usersTable+` (username, password_hash) VALUES (?, ?)`,
		username, hash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, username)
		}
		return fmt.Errorf("%w: failed to insert user: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// EnsureIndices creates the users table and its unique username index.
func (s *Store) EnsureIndices(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+usersTable+` (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// Close closes the SQLite database.
func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}
