package interfaces

import "context"

// CredentialStore defines the contract for durable username to password-hash
// storage. This interface remains the same across all backends.
type CredentialStore interface {
	// Load returns the full username -> password hash mapping.
	// A missing backing file or empty table yields an empty map, not an error.
	Load(ctx context.Context) (map[string]string, error)

	// Save appends a new credential record. Uniqueness is the caller's
	// responsibility; backends with a unique index report a conflict.
	Save(ctx context.Context, username, hash string) error

	// EnsureIndices prepares the backend (tables, unique indices, files).
	EnsureIndices(ctx context.Context) error

	// Close releases the backend resources.
	Close(ctx context.Context) error
}
